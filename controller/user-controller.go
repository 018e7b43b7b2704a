package controller

import (
	"matchday/app_error"
	"matchday/auth"
	"matchday/repository"
	"matchday/service"
	"matchday/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	authorizationService *service.AuthorizationService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		authorizationService: service.NewAuthorizationService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	basePath := "users/self"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getUserHandler(), Authenticated: true},
		{Method: "GET", Path: "/matches/:match_id", HandlerFunc: e.getMatchCapabilitiesHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type RoleAssignment struct {
	Role      repository.Role `json:"role"`
	ClubId    *string         `json:"club_id"`
	TeamId    *string         `json:"team_id"`
	HoldId    *string         `json:"hold_id"`
	RefereeId *string         `json:"referee_id"`
}

type Self struct {
	Id           string                `json:"id"`
	Username     string                `json:"username"`
	Name         string                `json:"name"`
	Roles        []*RoleAssignment     `json:"roles"`
	Capabilities *service.Capabilities `json:"capabilities"`
}

func toRoleAssignmentResponse(role *repository.RoleAssignment) *RoleAssignment {
	return &RoleAssignment{
		Role:      role.Role,
		ClubId:    role.ClubID,
		TeamId:    role.TeamID,
		HoldId:    role.HoldID,
		RefereeId: role.RefereeID,
	}
}

// @id GetSelf
// @Description Fetches the signed in user with the approved roles only
// @Tags user
// @Produce json
// @Success 200 {object} Self
// @Security BearerAuth
// @Router /users/self [get]
func (e *UserController) getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		if user == nil {
			return
		}
		capabilities, err := e.authorizationService.ForUser(user)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, &Self{
			Id:           user.ID,
			Username:     user.Username,
			Name:         user.DisplayName(),
			Roles:        utils.Map(auth.Roles(user), toRoleAssignmentResponse),
			Capabilities: capabilities,
		})
	}
}

// @id GetSelfMatchCapabilities
// @Description Fetches what the signed in user may do on a match
// @Tags user
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} service.Capabilities
// @Security BearerAuth
// @Router /users/self/matches/{match_id} [get]
func (e *UserController) getMatchCapabilitiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		capabilities, err := e.authorizationService.ForMatch(user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, capabilities)
	}
}
