package service

import (
	"strconv"
	"testing"

	"matchday/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMatchCapabilities(t *testing.T) {
	f := newFixture(t)
	authorization := NewAuthorizationService(db)

	home, err := authorization.ForMatch(f.homeSecretariat, f.matchId)
	require.NoError(t, err)
	assert.True(t, home.IsHomeSecretariat)
	assert.True(t, home.CanManageMatch())
	assert.False(t, home.CanViewMoveRequest())

	away, err := authorization.ForMatch(f.awaySecretariat, f.matchId)
	require.NoError(t, err)
	assert.False(t, away.CanManageMatch(), "the away secretariat has no write access")

	leader, err := authorization.ForMatch(f.homeTeamLeader, f.matchId)
	require.NoError(t, err)
	assert.True(t, leader.IsHomeTeamLeader, "scoped by team id")
	assert.True(t, leader.CanRequestMove())

	awayLeader, err := authorization.ForMatch(f.awayTeamLeader, f.matchId)
	require.NoError(t, err)
	assert.True(t, awayLeader.IsAwayTeamLeader, "scoped by hold id")
	assert.False(t, awayLeader.CanRequestMove())

	admin, err := authorization.ForMatch(f.tournamentAdmin, f.matchId)
	require.NoError(t, err)
	assert.True(t, admin.HasOverride)
	assert.True(t, admin.IsTournamentAuthority)
	assert.True(t, admin.CanManageMatch())

	superuser, err := authorization.ForMatch(f.superuser, f.matchId)
	require.NoError(t, err)
	assert.True(t, superuser.HasOverride)
	assert.False(t, superuser.IsTournamentAuthority)
}

func TestStaffOfAnotherClubHasNoOverride(t *testing.T) {
	f := newFixture(t)
	capabilities, err := NewAuthorizationService(db).ForMatch(f.outsider, f.matchId)
	require.NoError(t, err)
	assert.False(t, capabilities.HasOverride)
	assert.False(t, capabilities.IsHomeSecretariat)
	assert.False(t, capabilities.CanManageMatch())
}

func TestPendingRoleConfersNothing(t *testing.T) {
	f := newFixture(t)
	capabilities, err := NewAuthorizationService(db).ForMatch(f.pendingSuper, f.matchId)
	require.NoError(t, err)
	assert.False(t, capabilities.HasOverride)
	assert.False(t, capabilities.CanManageMatch())

	onlyPending := createUser(t, role(repository.RoleAdmin, repository.RoleStatusPending, nil))
	_, err = NewAuthorizationService(db).ForUser(onlyPending)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = NewAuthorizationService(db).ForUser(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAssignedRefereeByRefereeNumber(t *testing.T) {
	f := newFixture(t)
	referee, err := repository.NewUserRepository(db).CreateReferee(&repository.Referee{ID: uuid.NewString(), RefereeNo: "901", Name: "Imported Ref Two"})
	require.NoError(t, err)
	user := createUser(t, role(repository.RoleReferee, repository.RoleStatusApproved, func(r *repository.RoleAssignment) { r.RefereeID = &referee.ID }))

	capabilities, err := NewAuthorizationService(db).ForMatch(user, f.matchId)
	require.NoError(t, err)
	assert.True(t, capabilities.IsAssignedReferee)
	assert.True(t, capabilities.CanViewMoveRequest())
	assert.False(t, capabilities.CanManageMatch())
}

func TestResolvePartiesFallsBackToLeagueAndName(t *testing.T) {
	club := "club-" + uuid.NewString()[:8]
	suffix := uuid.NewString()[:8]
	teams := repository.NewTeamRepository(db)
	home, err := teams.Create(&repository.Team{ID: uuid.NewString(), ClubID: &club, League: "Serie 2", Name: "Legacy Home " + suffix})
	require.NoError(t, err)
	_, err = teams.Create(&repository.Team{ID: uuid.NewString(), League: "Serie 2", Name: "Legacy Away " + suffix})
	require.NoError(t, err)

	matchId := nextMatchId()
	_, err = repository.NewCalendarMatchRepository(db).Create(&repository.CalendarMatch{
		ID:         uuid.NewString(),
		ExternalId: strconv.Itoa(matchId),
		League:     " Serie 2 ",
		HomeTeam:   "Legacy Home " + suffix,
		AwayTeam:   "Legacy Away " + suffix,
	})
	require.NoError(t, err)

	authorization := NewAuthorizationService(db)
	parties, err := authorization.ResolveParties(matchId)
	require.NoError(t, err)
	require.NotNil(t, parties.HomeTeam)
	assert.Equal(t, home.ID, parties.HomeTeam.ID)
	assert.Equal(t, club, parties.HomeClubId())
	assert.Equal(t, "", parties.AwayClubId())

	secretariat := createUser(t, role(repository.RoleSecretariat, repository.RoleStatusApproved, func(r *repository.RoleAssignment) { r.ClubID = &club }))
	capabilities, err := authorization.ForMatch(secretariat, matchId)
	require.NoError(t, err)
	assert.True(t, capabilities.IsHomeSecretariat)
}

func TestResolvePartiesOfUnknownMatch(t *testing.T) {
	_, err := NewAuthorizationService(db).ResolveParties(-1)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
