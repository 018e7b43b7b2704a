package auth

import (
	"strings"

	"matchday/repository"
	"matchday/utils"
)

// RoleSet is the approved subset of a user's role assignments. Pending and
// rejected assignments never make it into the set.
type RoleSet []*repository.RoleAssignment

func Roles(user *repository.User) RoleSet {
	if user == nil {
		return RoleSet{}
	}
	return utils.Filter(user.Roles, func(r *repository.RoleAssignment) bool {
		return r != nil && r.Status == repository.RoleStatusApproved
	})
}

func (s RoleSet) IsEmpty() bool {
	return len(s) == 0
}

func (s RoleSet) Has(role repository.Role) bool {
	return utils.Any(s, func(r *repository.RoleAssignment) bool { return r.Role == role })
}

func (s RoleSet) HasAny(roles ...repository.Role) bool {
	return utils.Any(s, func(r *repository.RoleAssignment) bool { return utils.Contains(roles, r.Role) })
}

func (s RoleSet) IsAdmin() bool {
	return s.Has(repository.RoleAdmin)
}

// IsTournamentAuthority may decide move requests.
func (s RoleSet) IsTournamentAuthority() bool {
	return s.IsAdmin() || s.Has(repository.RoleTournamentAdmin)
}

// CanOverride bypasses home club scoping and the closed match lock. Club and
// referee staff roles never override, whatever club they belong to.
func (s RoleSet) CanOverride() bool {
	return s.IsTournamentAuthority() || s.Has(repository.RoleSuperuser)
}

func (s RoleSet) HasClubRole(role repository.Role, clubId string) bool {
	clubId = strings.TrimSpace(clubId)
	if clubId == "" {
		return false
	}
	return utils.Any(s, func(r *repository.RoleAssignment) bool {
		return r.Role == role && matches(r.ClubID, clubId)
	})
}

// IsTeamLeaderFor matches a team leader scoped either to the team id or to the hold id.
func (s RoleSet) IsTeamLeaderFor(teamId string, holdId string) bool {
	teamId = strings.TrimSpace(teamId)
	holdId = strings.TrimSpace(holdId)
	if teamId == "" && holdId == "" {
		return false
	}
	return utils.Any(s, func(r *repository.RoleAssignment) bool {
		if r.Role != repository.RoleTeamLeader {
			return false
		}
		return (teamId != "" && matches(r.TeamID, teamId)) || (holdId != "" && matches(r.HoldID, holdId))
	})
}

func (s RoleSet) RefereeIds() []string {
	ids := make([]string, 0)
	for _, r := range s {
		if r.Role == repository.RoleReferee && r.RefereeID != nil && strings.TrimSpace(*r.RefereeID) != "" {
			ids = append(ids, strings.TrimSpace(*r.RefereeID))
		}
	}
	return utils.Uniques(ids)
}

func matches(scope *string, value string) bool {
	return scope != nil && strings.TrimSpace(*scope) == value
}
