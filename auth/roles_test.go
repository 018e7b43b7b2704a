package auth

import (
	"testing"

	"matchday/repository"

	"github.com/stretchr/testify/assert"
)

func assignment(role repository.Role, status repository.RoleStatus) *repository.RoleAssignment {
	return &repository.RoleAssignment{Role: role, Status: status}
}

func scoped(role repository.Role, apply func(r *repository.RoleAssignment)) *repository.RoleAssignment {
	r := assignment(role, repository.RoleStatusApproved)
	apply(r)
	return r
}

func strPtr(value string) *string {
	return &value
}

func TestRolesKeepsOnlyApproved(t *testing.T) {
	user := &repository.User{Roles: []*repository.RoleAssignment{
		assignment(repository.RoleSuperuser, repository.RoleStatusPending),
		assignment(repository.RoleAdmin, repository.RoleStatusRejected),
		assignment(repository.RoleReferee, repository.RoleStatusApproved),
		nil,
	}}
	roles := Roles(user)
	assert.Len(t, roles, 1)
	assert.True(t, roles.Has(repository.RoleReferee))
	assert.False(t, roles.CanOverride())
	assert.False(t, roles.IsAdmin())

	assert.True(t, Roles(nil).IsEmpty())
}

func TestOverrideAndTournamentAuthority(t *testing.T) {
	tests := []struct {
		role      repository.Role
		override  bool
		authority bool
	}{
		{repository.RoleAdmin, true, true},
		{repository.RoleTournamentAdmin, true, true},
		{repository.RoleSuperuser, true, false},
		{repository.RoleRefAdmin, false, false},
		{repository.RoleSecretariat, false, false},
		{repository.RoleClubLeader, false, false},
		{repository.RoleTeamLeader, false, false},
		{repository.RoleReferee, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			roles := Roles(&repository.User{Roles: []*repository.RoleAssignment{assignment(tt.role, repository.RoleStatusApproved)}})
			assert.Equal(t, tt.override, roles.CanOverride())
			assert.Equal(t, tt.authority, roles.IsTournamentAuthority())
		})
	}
}

func TestStaffOfAnotherClubCannotOverride(t *testing.T) {
	roles := Roles(&repository.User{Roles: []*repository.RoleAssignment{
		scoped(repository.RoleSecretariat, func(r *repository.RoleAssignment) { r.ClubID = strPtr("club-9") }),
		scoped(repository.RoleClubLeader, func(r *repository.RoleAssignment) { r.ClubID = strPtr("club-9") }),
		assignment(repository.RoleRefAdmin, repository.RoleStatusApproved),
	}})
	assert.False(t, roles.CanOverride())
	assert.False(t, roles.IsTournamentAuthority())
	assert.False(t, roles.HasClubRole(repository.RoleSecretariat, "club-1"))

	roles = append(roles, assignment(repository.RoleAdmin, repository.RoleStatusApproved))
	assert.True(t, roles.IsAdmin())
	assert.True(t, roles.CanOverride())
}

func TestScopedRoles(t *testing.T) {
	roles := Roles(&repository.User{Roles: []*repository.RoleAssignment{
		scoped(repository.RoleSecretariat, func(r *repository.RoleAssignment) { r.ClubID = strPtr(" club-1 ") }),
		scoped(repository.RoleTeamLeader, func(r *repository.RoleAssignment) { r.HoldID = strPtr("H-1") }),
		scoped(repository.RoleTeamLeader, func(r *repository.RoleAssignment) { r.TeamID = strPtr("team-2") }),
		scoped(repository.RoleReferee, func(r *repository.RoleAssignment) { r.RefereeID = strPtr("ref-1") }),
		scoped(repository.RoleReferee, func(r *repository.RoleAssignment) { r.RefereeID = strPtr("ref-1") }),
	}})

	assert.True(t, roles.HasClubRole(repository.RoleSecretariat, "club-1"))
	assert.False(t, roles.HasClubRole(repository.RoleSecretariat, ""))
	assert.False(t, roles.HasClubRole(repository.RoleClubLeader, "club-1"))

	assert.True(t, roles.IsTeamLeaderFor("", "H-1"))
	assert.True(t, roles.IsTeamLeaderFor("team-2", ""))
	assert.False(t, roles.IsTeamLeaderFor("team-1", "H-2"))
	assert.False(t, roles.IsTeamLeaderFor("", ""))

	assert.Equal(t, []string{"ref-1"}, roles.RefereeIds())
}
