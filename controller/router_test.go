package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"matchday/repository"
	"matchday/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	user *repository.User
	err  error
}

func (s stubUsers) GetUserFromRequest(c *gin.Context) (*repository.User, error) {
	return s.user, s.err
}

func userWith(role repository.Role, status repository.RoleStatus) *repository.User {
	return &repository.User{ID: "user-1", Roles: []*repository.RoleAssignment{{Role: role, Status: status}}}
}

func newTestEngine(users UserLoader, roles []repository.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/matches/:match_id", AuthMiddleware(users, roles), func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.ID, "match_id": matchId})
	})
	return r
}

func serve(r *gin.Engine, path string) (int, map[string]any) {
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	body := map[string]any{}
	_ = json.Unmarshal(recorder.Body.Bytes(), &body)
	return recorder.Code, body
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		users  stubUsers
		roles  []repository.Role
		status int
		code   string
	}{
		{"no token", stubUsers{err: service.ErrNotAuthenticated.Wrap(errors.New("no token"))}, nil, http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"only pending roles", stubUsers{user: userWith(repository.RoleAdmin, repository.RoleStatusPending)}, nil, http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{"missing required role", stubUsers{user: userWith(repository.RoleSuperuser, repository.RoleStatusApproved)},
			[]repository.Role{repository.RoleAdmin, repository.RoleTournamentAdmin}, http.StatusForbidden, "NOT_AUTHORIZED"},
		{"signed in", stubUsers{user: userWith(repository.RoleSecretariat, repository.RoleStatusApproved)}, nil, http.StatusOK, ""},
		{"required role held", stubUsers{user: userWith(repository.RoleTournamentAdmin, repository.RoleStatusApproved)},
			[]repository.Role{repository.RoleAdmin, repository.RoleTournamentAdmin}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(newTestEngine(tt.users, tt.roles), "/api/matches/42")
			assert.Equal(t, tt.status, status)
			if tt.code != "" {
				assert.Equal(t, tt.code, body["code"])
			} else {
				assert.Equal(t, float64(42), body["match_id"])
			}
		})
	}
}

func TestInvalidMatchId(t *testing.T) {
	r := newTestEngine(stubUsers{user: userWith(repository.RoleSecretariat, repository.RoleStatusApproved)}, nil)
	for _, path := range []string{"/api/matches/abc", "/api/matches/0", "/api/matches/-3"} {
		status, body := serve(r, path)
		require.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, "INVALID_MATCH_ID", body["code"])
	}
}
