package controller

import (
	"strconv"
	"strings"

	"matchday/app_error"
	"matchday/auth"
	"matchday/client"
	"matchday/repository"
	"matchday/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []repository.Role
}

func SetRoutes(r *gin.Engine, db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) {
	userService := service.NewUserService(db)
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupMatchController(db, publisher, logger)...)
	routes = append(routes, setupMoveRequestController(db, publisher, logger)...)
	routes = append(routes, setupUserController(db)...)
	api := r.Group("/api")
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(userService, route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		api.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

// UserLoader resolves the signed in user of a request.
type UserLoader interface {
	GetUserFromRequest(c *gin.Context) (*repository.User, error)
}

// AuthMiddleware loads the user and stores it in the context. A user without
// any approved role is treated as not signed in. When roles are given the user
// needs one of them approved.
func AuthMiddleware(users UserLoader, roles []repository.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetUserFromRequest(c)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		approved := auth.Roles(user)
		if approved.IsEmpty() {
			app_error.Respond(c, service.ErrNotAuthenticated)
			return
		}
		if len(roles) > 0 && !approved.HasAny(roles...) {
			app_error.Respond(c, service.ErrNotAuthorized)
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

func getUser(c *gin.Context) *repository.User {
	value, ok := c.Get("user")
	if !ok {
		app_error.Respond(c, service.ErrNotAuthenticated)
		return nil
	}
	user, ok := value.(*repository.User)
	if !ok || user == nil {
		app_error.Respond(c, service.ErrNotAuthenticated)
		return nil
	}
	return user
}

func getMatchId(c *gin.Context) (int, bool) {
	matchId, err := strconv.Atoi(strings.TrimSpace(c.Param("match_id")))
	if err != nil || matchId <= 0 {
		app_error.Respond(c, service.ErrInvalidMatchId)
		return 0, false
	}
	return matchId, true
}

func getUserAndMatchId(c *gin.Context) (*repository.User, int, bool) {
	user := getUser(c)
	if user == nil {
		return nil, 0, false
	}
	matchId, ok := getMatchId(c)
	return user, matchId, ok
}

func bindBody(c *gin.Context, body any) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		app_error.Respond(c, service.ErrInvalidBody.Wrap(err))
		return false
	}
	return true
}
