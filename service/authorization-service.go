package service

import (
	"errors"
	"strings"

	"matchday/auth"
	"matchday/repository"

	"gorm.io/gorm"
)

// MatchParties is the home and away side of a fixture resolved to registered teams.
type MatchParties struct {
	Match    *repository.CalendarMatch
	HomeTeam *repository.Team
	AwayTeam *repository.Team
}

func (p *MatchParties) HomeClubId() string {
	return p.HomeTeam.Club()
}

func (p *MatchParties) AwayClubId() string {
	return p.AwayTeam.Club()
}

// Capabilities is what one user may do on one match. It is computed once per
// request and passed to the gates.
type Capabilities struct {
	UserId                string `json:"user_id"`
	MatchId               int    `json:"match_id,omitempty"`
	HasOverride           bool   `json:"has_override"`
	IsTournamentAuthority bool   `json:"is_tournament_authority"`
	IsRefAdmin            bool   `json:"is_ref_admin"`
	IsHomeSecretariat     bool   `json:"is_home_secretariat"`
	IsHomeTeamLeader      bool   `json:"is_home_team_leader"`
	IsAwayTeamLeader      bool   `json:"is_away_team_leader"`
	IsHomeClubLeader      bool   `json:"is_home_club_leader"`
	IsAwayClubLeader      bool   `json:"is_away_club_leader"`
	IsAssignedReferee     bool   `json:"is_assigned_referee"`

	Parties *MatchParties `json:"-"`
}

// CanManageMatch covers every secretariat write on the match.
func (c *Capabilities) CanManageMatch() bool {
	return c.IsHomeSecretariat || c.HasOverride
}

// CanViewMoveRequest covers everyone with a stake in the fixture's schedule.
func (c *Capabilities) CanViewMoveRequest() bool {
	return c.HasOverride || c.IsRefAdmin ||
		c.IsHomeTeamLeader || c.IsAwayTeamLeader ||
		c.IsHomeClubLeader || c.IsAwayClubLeader ||
		c.IsAssignedReferee
}

func (c *Capabilities) CanRequestMove() bool {
	return c.IsHomeTeamLeader || c.IsHomeClubLeader
}

type AuthorizationService struct {
	calendarMatchRepository *repository.CalendarMatchRepository
	teamRepository          *repository.TeamRepository
	userRepository          *repository.UserRepository
}

func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{
		calendarMatchRepository: repository.NewCalendarMatchRepository(db),
		teamRepository:          repository.NewTeamRepository(db),
		userRepository:          repository.NewUserRepository(db),
	}
}

// ForUser returns the match independent capabilities. A user without any
// approved role is treated as not signed in.
func (s *AuthorizationService) ForUser(user *repository.User) (*Capabilities, error) {
	roles := auth.Roles(user)
	if roles.IsEmpty() {
		return nil, ErrNotAuthenticated
	}
	return &Capabilities{
		UserId:                user.ID,
		HasOverride:           roles.CanOverride(),
		IsTournamentAuthority: roles.IsTournamentAuthority(),
		IsRefAdmin:            roles.Has(repository.RoleRefAdmin),
	}, nil
}

func (s *AuthorizationService) ForMatch(user *repository.User, matchId int) (*Capabilities, error) {
	capabilities, err := s.ForUser(user)
	if err != nil {
		return nil, err
	}
	parties, err := s.ResolveParties(matchId)
	if err != nil {
		return nil, err
	}
	roles := auth.Roles(user)
	match := parties.Match
	capabilities.MatchId = matchId
	capabilities.Parties = parties
	capabilities.IsHomeSecretariat = roles.HasClubRole(repository.RoleSecretariat, parties.HomeClubId())
	capabilities.IsHomeClubLeader = roles.HasClubRole(repository.RoleClubLeader, parties.HomeClubId())
	capabilities.IsAwayClubLeader = roles.HasClubRole(repository.RoleClubLeader, parties.AwayClubId())
	capabilities.IsHomeTeamLeader = roles.IsTeamLeaderFor(teamId(parties.HomeTeam), deref(match.HomeHoldId))
	capabilities.IsAwayTeamLeader = roles.IsTeamLeaderFor(teamId(parties.AwayTeam), deref(match.AwayHoldId))
	capabilities.IsAssignedReferee, err = s.isAssignedReferee(roles, match)
	if err != nil {
		return nil, err
	}
	return capabilities, nil
}

// ResolveParties loads the fixture and the registered team on each side.
func (s *AuthorizationService) ResolveParties(matchId int) (*MatchParties, error) {
	match, err := s.calendarMatchRepository.GetByMatchId(matchId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	homeTeam, err := s.resolveTeam(match.HomeHoldId, match.League, match.HomeTeam)
	if err != nil {
		return nil, err
	}
	awayTeam, err := s.resolveTeam(match.AwayHoldId, match.League, match.AwayTeam)
	if err != nil {
		return nil, err
	}
	return &MatchParties{Match: match, HomeTeam: homeTeam, AwayTeam: awayTeam}, nil
}

// resolveTeam prefers the hold id. Fixtures without one fall back to the
// exact league and team name.
func (s *AuthorizationService) resolveTeam(holdId *string, league string, name string) (*repository.Team, error) {
	if hold := deref(holdId); hold != "" {
		return s.teamRepository.GetLatestTeamByHoldId(hold)
	}
	return s.teamRepository.GetTeamByLeagueAndName(strings.TrimSpace(league), strings.TrimSpace(name))
}

func (s *AuthorizationService) isAssignedReferee(roles auth.RoleSet, match *repository.CalendarMatch) (bool, error) {
	assigned := make([]string, 0, 2)
	for _, id := range []*string{match.Referee1Id, match.Referee2Id} {
		if value := deref(id); value != "" {
			assigned = append(assigned, value)
		}
	}
	if len(assigned) == 0 {
		return false, nil
	}
	for _, refereeId := range roles.RefereeIds() {
		referee, err := s.userRepository.GetRefereeById(refereeId)
		if err != nil {
			return false, err
		}
		for _, id := range assigned {
			if id == refereeId || (referee != nil && strings.TrimSpace(referee.RefereeNo) == id) {
				return true, nil
			}
		}
	}
	return false, nil
}

func teamId(team *repository.Team) string {
	if team == nil {
		return ""
	}
	return team.ID
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
