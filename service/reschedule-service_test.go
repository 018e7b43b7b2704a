package service

import (
	"testing"
	"time"

	"matchday/app_error"
	"matchday/client"
	"matchday/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (f *fixture) requestMove(t *testing.T, input MoveRequestInput) *repository.MatchMoveRequest {
	t.Helper()
	request, err := NewRescheduleService(db, f.events, testLogger()).Create(t.Context(), f.homeTeamLeader, f.matchId, input)
	require.NoError(t, err)
	return request
}

func TestMoveRequestFullFlow(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())

	request := f.requestMove(t, MoveRequestInput{Date: "2026-03-21", Time: "9:30", Note: " ny hal "})
	assert.Equal(t, repository.MoveRequestPendingAway, request.Status)
	assert.Equal(t, "09:30", *request.ProposedTime)
	assert.Equal(t, "ny hal", *request.Note)

	_, err := service.Accept(t.Context(), f.homeTeamLeader, f.matchId)
	assert.ErrorIs(t, err, ErrNotAuthorized, "only the away team accepts")

	accepted, err := service.Accept(t.Context(), f.awayTeamLeader, f.matchId)
	require.NoError(t, err)
	assert.Equal(t, repository.MoveRequestPendingTa, accepted.Status)
	require.NotNil(t, accepted.AwayDecidedBy)
	assert.Equal(t, f.awayTeamLeader.ID, accepted.AwayDecidedBy.ID)

	_, err = service.Decide(t.Context(), f.homeSecretariat, request.ID, "APPROVE", "")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	approved, err := service.Decide(t.Context(), f.tournamentAdmin, request.ID, " approve ", "")
	require.NoError(t, err)
	assert.Equal(t, repository.MoveRequestApproved, approved.Status)
	assert.NotNil(t, approved.TaDecidedAt)

	match, err := repository.NewCalendarMatchRepository(db).GetByMatchId(f.matchId)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-21", match.Date.Format(time.DateOnly))
	assert.Equal(t, "09:30", *match.Time)

	_, err = service.Decide(t.Context(), f.tournamentAdmin, request.ID, "REJECT", "")
	assert.ErrorIs(t, err, ErrRequestNotPending)
	assert.Equal(t, app_error.PreconditionFailed, app_error.KindOf(err))

	assert.Equal(t, []client.EventType{
		client.EventMoveRequestCreated,
		client.EventMoveRequestAccepted,
		client.EventMoveRequestApproved,
	}, f.eventTypes())
}

func TestMoveRequestApproveKeepsUnproposedField(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())
	request := f.requestMove(t, MoveRequestInput{Time: "20:15"})
	_, err := service.Accept(t.Context(), f.awayTeamLeader, f.matchId)
	require.NoError(t, err)
	_, err = service.Decide(t.Context(), f.tournamentAdmin, request.ID, "APPROVE", "")
	require.NoError(t, err)

	match, err := repository.NewCalendarMatchRepository(db).GetByMatchId(f.matchId)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", match.Date.Format(time.DateOnly))
	assert.Equal(t, "20:15", *match.Time)
}

func TestMoveRequestRejections(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())

	f.requestMove(t, MoveRequestInput{Date: "2026-04-01"})
	rejected, err := service.Reject(t.Context(), f.awayTeamLeader, f.matchId, "  ")
	require.NoError(t, err)
	assert.Equal(t, repository.MoveRequestRejected, rejected.Status)
	assert.Equal(t, "Afvist", *rejected.RejectionReason)

	_, err = service.Reject(t.Context(), f.awayTeamLeader, f.matchId, "")
	assert.ErrorIs(t, err, ErrNoActiveRequest)
	_, err = service.Accept(t.Context(), f.awayTeamLeader, f.matchId)
	assert.ErrorIs(t, err, ErrNoActiveRequest)

	second := f.requestMove(t, MoveRequestInput{Date: "2026-04-02"})
	_, err = service.Accept(t.Context(), f.awayTeamLeader, f.matchId)
	require.NoError(t, err)
	decided, err := service.Decide(t.Context(), f.tournamentAdmin, second.ID, "reject", "Hallen er optaget")
	require.NoError(t, err)
	assert.Equal(t, repository.MoveRequestRejected, decided.Status)
	assert.Equal(t, "Hallen er optaget", *decided.RejectionReason)

	match, err := repository.NewCalendarMatchRepository(db).GetByMatchId(f.matchId)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", match.Date.Format(time.DateOnly), "a rejection leaves the fixture alone")
}

func TestMoveRequestCreateValidation(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())

	_, err := service.Create(t.Context(), f.awayTeamLeader, f.matchId, MoveRequestInput{Date: "2026-04-01"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = service.Create(t.Context(), f.homeTeamLeader, f.matchId, MoveRequestInput{Note: "hello"})
	assert.ErrorIs(t, err, ErrMissingProposal)

	_, err = service.Create(t.Context(), f.homeTeamLeader, f.matchId, MoveRequestInput{Date: "01-04-2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = service.Create(t.Context(), f.homeTeamLeader, f.matchId, MoveRequestInput{Time: "25:00"})
	assert.ErrorIs(t, err, ErrInvalidTime)

	f.requestMove(t, MoveRequestInput{Date: "2026-04-01"})
	_, err = service.Create(t.Context(), f.homeTeamLeader, f.matchId, MoveRequestInput{Date: "2026-04-08"})
	assert.ErrorIs(t, err, ErrActiveRequestExist)
	assert.Equal(t, app_error.PreconditionFailed, app_error.KindOf(err))
}

func TestMoveRequestDecideValidation(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())
	request := f.requestMove(t, MoveRequestInput{Date: "2026-04-01"})

	_, err := service.Decide(t.Context(), f.tournamentAdmin, request.ID, "MAYBE", "")
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = service.Decide(t.Context(), f.tournamentAdmin, "does-not-exist", "APPROVE", "")
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = service.Decide(t.Context(), f.tournamentAdmin, request.ID, "APPROVE", "")
	assert.ErrorIs(t, err, ErrRequestNotPending, "the away team has not accepted yet")

	_, err = service.Decide(t.Context(), f.superuser, request.ID, "APPROVE", "")
	assert.ErrorIs(t, err, ErrNotAuthorized, "superusers do not decide move requests")
}

func TestGetLatestMoveRequest(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())

	view, err := service.GetLatest(f.homeTeamLeader, f.matchId)
	require.NoError(t, err)
	assert.Nil(t, view.Request)
	assert.True(t, view.CanRequest)
	assert.False(t, view.CanAccept)

	f.requestMove(t, MoveRequestInput{Date: "2026-04-01"})

	view, err = service.GetLatest(f.homeTeamLeader, f.matchId)
	require.NoError(t, err)
	assert.False(t, view.CanRequest, "one active request at a time")

	view, err = service.GetLatest(f.awayTeamLeader, f.matchId)
	require.NoError(t, err)
	require.NotNil(t, view.Request)
	assert.True(t, view.CanAccept)
	require.NotNil(t, view.Request.CreatedBy)
	assert.Equal(t, f.homeTeamLeader.ID, view.Request.CreatedBy.ID)

	_, err = service.GetLatest(f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestListPendingIsEnrichedWithFixture(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())
	request := f.requestMove(t, MoveRequestInput{Date: "2026-05-01", Time: "12:00"})

	_, err := service.ListPending(f.homeTeamLeader)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	pending, err := service.ListPending(f.tournamentAdmin)
	require.NoError(t, err)
	for _, p := range pending {
		assert.NotEqual(t, request.ID, p.Request.ID, "pending away requests are not listed")
	}

	_, err = service.Accept(t.Context(), f.awayTeamLeader, f.matchId)
	require.NoError(t, err)
	pending, err = service.ListPending(f.tournamentAdmin)
	require.NoError(t, err)
	var found *PendingMoveRequest
	for _, p := range pending {
		if p.Request.ID == request.ID {
			found = p
		}
	}
	require.NotNil(t, found)
	require.NotNil(t, found.Current)
	assert.Equal(t, "18:00", *found.Current.Time)
	assert.Equal(t, "12:00", *found.Request.ProposedTime)
}

func TestParseProposedDateAndTime(t *testing.T) {
	date, err := ParseProposedDate(" 2026-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", date.Format(time.DateOnly))

	date, err = ParseProposedDate("")
	assert.NoError(t, err)
	assert.Nil(t, date)

	_, err = ParseProposedDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	kickoff, err := ParseProposedTime("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", *kickoff)

	for _, value := range []string{"24:00", "12:60", "noon", "12"} {
		_, err = ParseProposedTime(value)
		assert.ErrorIs(t, err, ErrInvalidTime, value)
	}
}

func TestDecideLosesToConcurrentDecision(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())
	request := f.requestMove(t, MoveRequestInput{Date: "2026-04-11"})
	_, err := service.Accept(t.Context(), f.awayTeamLeader, f.matchId)
	require.NoError(t, err)

	stale, err := repository.NewMoveRequestRepository(db).GetById(request.ID)
	require.NoError(t, err)
	require.Equal(t, repository.MoveRequestPendingTa, stale.Status)

	_, err = service.Decide(t.Context(), f.tournamentAdmin, request.ID, "APPROVE", "")
	require.NoError(t, err)

	err = service.apply(stale, DecisionReject, map[string]any{
		"status":           repository.MoveRequestRejected,
		"ta_decided_by_id": f.tournamentAdmin.ID,
		"rejection_reason": "too late",
	})
	assert.ErrorIs(t, err, ErrRequestNotPending)

	current, err := repository.NewMoveRequestRepository(db).GetById(request.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.MoveRequestApproved, current.Status)
	assert.Nil(t, current.RejectionReason)

	affected, err := repository.NewMoveRequestRepository(db).TransitionById(request.ID, repository.MoveRequestPendingTa, map[string]any{"status": repository.MoveRequestRejected})
	require.NoError(t, err)
	assert.Zero(t, affected)

	match, err := repository.NewCalendarMatchRepository(db).GetByMatchId(f.matchId)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-11", match.Date.Format(time.DateOnly))
}

func TestSecondActiveRequestHitsUniqueIndex(t *testing.T) {
	f := newFixture(t)
	service := NewRescheduleService(db, f.events, testLogger())
	f.requestMove(t, MoveRequestInput{Date: "2026-04-01"})

	duplicate := func(status repository.MoveRequestStatus) *repository.MatchMoveRequest {
		return &repository.MatchMoveRequest{
			MatchId:      f.matchId,
			Status:       status,
			ProposedDate: ptr(time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)),
			CreatedById:  f.homeTeamLeader.ID,
		}
	}

	_, err := repository.NewMoveRequestRepository(db).Create(duplicate(repository.MoveRequestPendingTa))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = service.insert(duplicate(repository.MoveRequestPendingAway))
	assert.ErrorIs(t, err, ErrActiveRequestExist)
	assert.Equal(t, app_error.PreconditionFailed, app_error.KindOf(err))

	closed, err := service.insert(duplicate(repository.MoveRequestRejected))
	require.NoError(t, err, "closed requests are outside the index")
	assert.NotEmpty(t, closed.ID)
}
