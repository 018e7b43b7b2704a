package service

import (
	"testing"

	"matchday/app_error"
	"matchday/client"
	"matchday/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRequiresBothLineupApprovals(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	lifecycle := NewMatchLifecycleService(db, f.events, testLogger())

	_, err := lifecycle.Start(t.Context(), f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrMissingApprovals)
	assert.Equal(t, app_error.PreconditionFailed, app_error.KindOf(err))

	_, err = NewLineupApprovalService(db, f.events, testLogger()).Approve(t.Context(), f.homeSecretariat, f.matchId,
		LineupApprovalInput{Venue: "Hjemme", LeaderName: "Anna Hansen", Signature: pngDataUrl})
	require.NoError(t, err)
	_, err = lifecycle.Start(t.Context(), f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrMissingApprovals, "one venue is not enough")

	start, err := repository.NewApprovalRepository(db).GetMatchStart(f.matchId)
	require.NoError(t, err)
	assert.Nil(t, start)
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	f.approveBoth(t)

	first := f.start(t)
	second, err := NewMatchLifecycleService(db, f.events, testLogger()).Start(t.Context(), f.tournamentAdmin, f.matchId)
	require.NoError(t, err)

	assert.Equal(t, first.StartedAt.UnixMicro(), second.StartedAt.UnixMicro())
	assert.Equal(t, f.homeSecretariat.ID, second.StartedById)
	assert.Equal(t, repository.MatchStatusLive, f.status(t))
}

func TestStartNeverDowngradesClosedRows(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	f.approveBoth(t)
	require.NoError(t, db.Create(&repository.MatchProtocolPlayer{MatchId: f.matchId, Side: "HOME", RowIndex: 0, Status: ptr("closed")}).Error)
	require.NoError(t, db.Create(&repository.MatchProtocolEvent{MatchId: f.matchId, RowIndex: 0}).Error)
	require.NoError(t, db.Create(&repository.MatchUploadEvent{MatchId: f.matchId, Venue: repository.VenueAway, RowIndex: 0, Status: ptr("Open")}).Error)

	f.start(t)

	var player repository.MatchProtocolPlayer
	require.NoError(t, db.First(&player, "match_id = ?", f.matchId).Error)
	assert.Equal(t, "closed", *player.Status)
	var event repository.MatchProtocolEvent
	require.NoError(t, db.First(&event, "match_id = ?", f.matchId).Error)
	assert.Equal(t, "live", *event.Status)
	var upload repository.MatchUploadEvent
	require.NoError(t, db.First(&upload, "match_id = ?", f.matchId).Error)
	assert.Equal(t, "live", *upload.Status)
}

func TestStartRequiresAuthorization(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	f.approveBoth(t)

	_, err := NewMatchLifecycleService(db, f.events, testLogger()).Start(t.Context(), f.outsider, f.matchId)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	noRoles := createUser(t)
	_, err = NewMatchLifecycleService(db, f.events, testLogger()).Start(t.Context(), noRoles, f.matchId)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRefereeCannotSignBeforeStart(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)

	_, err := NewRefereeApprovalService(db, f.events, testLogger()).Approve(t.Context(), f.homeSecretariat, f.matchId, RefereeApprovalInput{
		RefIndex: 1, Name: "Ref", RefereeNo: "R1", Signature: pngDataUrl,
	})
	assert.ErrorIs(t, err, ErrMatchNotStarted)
}

func TestRefereeApprovalInputValidation(t *testing.T) {
	f := newFixture(t)
	service := NewRefereeApprovalService(db, f.events, testLogger())
	tests := []struct {
		name  string
		input RefereeApprovalInput
		want  error
	}{
		{"seat 3", RefereeApprovalInput{RefIndex: 3, Name: "Ref", RefereeNo: "R1", Signature: pngDataUrl}, ErrInvalidRefIndex},
		{"seat 0", RefereeApprovalInput{RefIndex: 0, Name: "Ref", RefereeNo: "R1", Signature: pngDataUrl}, ErrInvalidRefIndex},
		{"no name", RefereeApprovalInput{RefIndex: 1, Name: "  ", RefereeNo: "R1", Signature: pngDataUrl}, ErrMissingName},
		{"no number", RefereeApprovalInput{RefIndex: 1, Name: "Ref", RefereeNo: "", Signature: pngDataUrl}, ErrMissingRefNo},
		{"bad signature", RefereeApprovalInput{RefIndex: 1, Name: "Ref", RefereeNo: "R1", Signature: "data:image/png;base64,%%%"}, ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Approve(t.Context(), f.homeSecretariat, f.matchId, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRefereeApprovalWritesIdentityToFixture(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	f.approveBoth(t)
	f.start(t)
	service := NewRefereeApprovalService(db, f.events, testLogger())

	approval, err := service.Approve(t.Context(), f.homeSecretariat, f.matchId, RefereeApprovalInput{
		RefIndex: 2, Name: "Second Ref", RefereeNo: "222", Signature: pngDataUrl, NoRef2: true,
	})
	require.NoError(t, err)
	assert.False(t, approval.NoRef2, "noRef2 is ignored on seat 2")

	match, err := repository.NewCalendarMatchRepository(db).GetByMatchId(f.matchId)
	require.NoError(t, err)
	assert.Equal(t, "Second Ref", *match.Referee2Name)
	assert.Equal(t, "222", *match.Referee2Id)
	assert.Equal(t, "Imported Ref", *match.Referee1Name)

	_, err = service.Approve(t.Context(), f.homeSecretariat, f.matchId, RefereeApprovalInput{
		RefIndex: 1, Name: "Only Ref", RefereeNo: "111", Signature: pngDataUrl, NoRef2: true,
	})
	require.NoError(t, err)
	match, err = repository.NewCalendarMatchRepository(db).GetByMatchId(f.matchId)
	require.NoError(t, err)
	assert.Equal(t, "Only Ref", *match.Referee1Name)
	assert.Equal(t, "111", *match.Referee1Id)
	assert.Nil(t, match.Referee2Name, "noRef2 clears the second seat")
	assert.Nil(t, match.Referee2Id)
}

func TestCloseRequiresRefereeApprovals(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	lifecycle := NewMatchLifecycleService(db, f.events, testLogger())

	_, err := lifecycle.Close(t.Context(), f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrMatchNotStarted)

	f.approveBoth(t)
	f.start(t)

	_, err = lifecycle.Close(t.Context(), f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrMissingRef1)

	f.approveReferee(t, 1, false)
	_, err = lifecycle.Close(t.Context(), f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrMissingRef2)

	f.approveReferee(t, 2, false)
	status, err := lifecycle.Close(t.Context(), f.homeSecretariat, f.matchId)
	require.NoError(t, err)
	assert.Equal(t, repository.MatchStatusClosed, status)
	assert.Equal(t, repository.MatchStatusClosed, f.status(t))

	_, err = lifecycle.Close(t.Context(), f.homeSecretariat, f.matchId)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.Equal(t, app_error.PreconditionFailed, app_error.KindOf(err))
}

func TestCloseWithSingleRefereeWaiver(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	f.approveBoth(t)
	f.start(t)
	f.approveReferee(t, 1, true)

	_, err := NewMatchLifecycleService(db, f.events, testLogger()).Close(t.Context(), f.homeSecretariat, f.matchId)
	require.NoError(t, err)

	rows, err := repository.NewMatchDayRepository(db).GetLineup(f.matchId, repository.VenueAway)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, "closed", *row.Status)
	}
	assert.Equal(t, []client.EventType{
		client.EventLineupApproved,
		client.EventLineupApproved,
		client.EventMatchStarted,
		client.EventRefereeApproved,
		client.EventMatchClosed,
	}, f.eventTypes())
}

func TestClosedMatchIsLockedForSecretariat(t *testing.T) {
	f := newFixture(t)
	f.seedStandardLineups(t)
	f.approveBoth(t)
	f.start(t)
	f.approveReferee(t, 1, true)
	_, err := NewMatchLifecycleService(db, f.events, testLogger()).Close(t.Context(), f.homeSecretariat, f.matchId)
	require.NoError(t, err)

	referees := NewRefereeApprovalService(db, f.events, testLogger())
	input := RefereeApprovalInput{RefIndex: 2, Name: "Late Ref", RefereeNo: "333", Signature: pngDataUrl}
	_, err = referees.Approve(t.Context(), f.homeSecretariat, f.matchId, input)
	assert.ErrorIs(t, err, ErrMatchLocked)

	_, err = referees.Approve(t.Context(), f.superuser, f.matchId, input)
	assert.NoError(t, err)
}
