package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"matchday/client"
	"matchday/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultRejectionReason = "Afvist"

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

type MoveRequestInput struct {
	Date string
	Time string
	Note string
}

// MoveRequestView is the latest request of a match together with what the
// caller may do with it.
type MoveRequestView struct {
	Request      *repository.MatchMoveRequest
	Capabilities *Capabilities
	CanAccept    bool
	CanRequest   bool
}

// PendingMoveRequest pairs a request awaiting the tournament authority with
// the fixture as it is currently scheduled.
type PendingMoveRequest struct {
	Request *repository.MatchMoveRequest
	Current *repository.CalendarMatch
}

type RescheduleService struct {
	db                      *gorm.DB
	moveRequestRepository   *repository.MoveRequestRepository
	calendarMatchRepository *repository.CalendarMatchRepository
	authorizationService    *AuthorizationService
	transitions             transitions
}

func NewRescheduleService(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *RescheduleService {
	return &RescheduleService{
		db:                      db,
		moveRequestRepository:   repository.NewMoveRequestRepository(db),
		calendarMatchRepository: repository.NewCalendarMatchRepository(db),
		authorizationService:    NewAuthorizationService(db),
		transitions:             newTransitions(publisher, logger),
	}
}

// Create opens a move request on behalf of the home side. It waits for the away team first.
func (s *RescheduleService) Create(ctx context.Context, user *repository.User, matchId int, input MoveRequestInput) (*repository.MatchMoveRequest, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanRequestMove() {
		return nil, ErrNotAuthorized
	}
	date, err := ParseProposedDate(input.Date)
	if err != nil {
		return nil, err
	}
	kickoff, err := ParseProposedTime(input.Time)
	if err != nil {
		return nil, err
	}
	if date == nil && kickoff == nil {
		return nil, ErrMissingProposal
	}
	active, err := s.moveRequestRepository.GetActiveForMatch(matchId)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveRequestExist
	}

	request := &repository.MatchMoveRequest{
		MatchId:      matchId,
		Status:       repository.MoveRequestPendingAway,
		ProposedDate: date,
		ProposedTime: kickoff,
		CreatedById:  user.ID,
	}
	if note := strings.TrimSpace(input.Note); note != "" {
		request.Note = &note
	}
	request, err = s.insert(request)
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventMoveRequestCreated, matchId, user.ID, map[string]any{
		"request_id": request.ID,
	})
	return request, nil
}

func (s *RescheduleService) GetLatest(user *repository.User, matchId int) (*MoveRequestView, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanViewMoveRequest() {
		return nil, ErrNotAuthorized
	}
	request, err := s.moveRequestRepository.GetLatestForMatch(matchId)
	if err != nil {
		return nil, err
	}
	view := &MoveRequestView{
		Request:      request,
		Capabilities: capabilities,
		CanRequest:   capabilities.CanRequestMove() && (request == nil || !request.IsActive()),
	}
	view.CanAccept = capabilities.IsAwayTeamLeader && request != nil && request.Status == repository.MoveRequestPendingAway
	return view, nil
}

// Accept forwards the pending request to the tournament authority.
func (s *RescheduleService) Accept(ctx context.Context, user *repository.User, matchId int) (*repository.MatchMoveRequest, error) {
	if err := s.authorizeAwayTeam(user, matchId); err != nil {
		return nil, err
	}
	now := time.Now()
	affected, err := s.moveRequestRepository.TransitionForMatch(matchId, repository.MoveRequestPendingAway, map[string]any{
		"status":             repository.MoveRequestPendingTa,
		"away_decided_by_id": user.ID,
		"away_decided_at":    now,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNoActiveRequest
	}
	request, err := s.moveRequestRepository.GetLatestForMatch(matchId)
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventMoveRequestAccepted, matchId, user.ID, map[string]any{
		"request_id": request.ID,
	})
	return request, nil
}

func (s *RescheduleService) Reject(ctx context.Context, user *repository.User, matchId int, reason string) (*repository.MatchMoveRequest, error) {
	if err := s.authorizeAwayTeam(user, matchId); err != nil {
		return nil, err
	}
	now := time.Now()
	affected, err := s.moveRequestRepository.TransitionForMatch(matchId, repository.MoveRequestPendingAway, map[string]any{
		"status":             repository.MoveRequestRejected,
		"away_decided_by_id": user.ID,
		"away_decided_at":    now,
		"rejection_reason":   rejectionReason(reason),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNoActiveRequest
	}
	request, err := s.moveRequestRepository.GetLatestForMatch(matchId)
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventMoveRequestRejected, matchId, user.ID, map[string]any{
		"request_id": request.ID,
		"stage":      "away",
	})
	return request, nil
}

// Decide is the tournament authority's final word. Approving writes the
// proposed date and time onto the fixture in the same transaction.
func (s *RescheduleService) Decide(ctx context.Context, user *repository.User, requestId string, decisionValue string, reason string) (*repository.MatchMoveRequest, error) {
	capabilities, err := s.authorizationService.ForUser(user)
	if err != nil {
		return nil, err
	}
	if !capabilities.IsTournamentAuthority {
		return nil, ErrNotAuthorized
	}
	decision := Decision(strings.ToUpper(strings.TrimSpace(decisionValue)))
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidDecision
	}
	request, err := s.moveRequestRepository.GetById(requestId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if request.Status != repository.MoveRequestPendingTa {
		return nil, ErrRequestNotPending
	}
	if decision == DecisionApprove && request.ProposedDate == nil && request.ProposedTime == nil {
		return nil, ErrMissingProposal
	}

	now := time.Now()
	updates := map[string]any{
		"ta_decided_by_id": user.ID,
		"ta_decided_at":    now,
	}
	eventType := client.EventMoveRequestApproved
	if decision == DecisionApprove {
		updates["status"] = repository.MoveRequestApproved
	} else {
		updates["status"] = repository.MoveRequestRejected
		updates["rejection_reason"] = rejectionReason(reason)
		eventType = client.EventMoveRequestRejected
	}
	if err := s.apply(request, decision, updates); err != nil {
		return nil, err
	}
	s.transitions.record(ctx, eventType, request.MatchId, user.ID, map[string]any{
		"request_id":    request.ID,
		"stage":         "tournament",
		"proposed_date": formatDate(request.ProposedDate),
		"proposed_time": deref(request.ProposedTime),
	})
	return s.moveRequestRepository.GetById(request.ID)
}

// insert stores a new request. The partial unique index catches a request
// created concurrently after the active check.
func (s *RescheduleService) insert(request *repository.MatchMoveRequest) (*repository.MatchMoveRequest, error) {
	created, err := s.moveRequestRepository.Create(request)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrActiveRequestExist
		}
		return nil, err
	}
	return created, nil
}

// apply moves a request out of PENDING_TA and, on approval, reschedules the
// fixture. The request may be stale; the status guard runs in the update itself.
func (s *RescheduleService) apply(request *repository.MatchMoveRequest, decision Decision, updates map[string]any) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.moveRequestRepository.WithTx(tx).TransitionById(request.ID, repository.MoveRequestPendingTa, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrRequestNotPending
		}
		if decision != DecisionApprove {
			return nil
		}
		affected, err = s.calendarMatchRepository.WithTx(tx).UpdateSchedule(request.MatchId, request.ProposedDate, request.ProposedTime)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrMatchNotFound
		}
		return nil
	})
}

// ListPending returns the requests awaiting the tournament authority, oldest first.
func (s *RescheduleService) ListPending(user *repository.User) ([]*PendingMoveRequest, error) {
	capabilities, err := s.authorizationService.ForUser(user)
	if err != nil {
		return nil, err
	}
	if !capabilities.IsTournamentAuthority {
		return nil, ErrNotAuthorized
	}
	requests, err := s.moveRequestRepository.GetPendingTa()
	if err != nil {
		return nil, err
	}
	matchIds := make([]int, 0, len(requests))
	for _, request := range requests {
		matchIds = append(matchIds, request.MatchId)
	}
	matches, err := s.calendarMatchRepository.GetByMatchIds(matchIds)
	if err != nil {
		return nil, err
	}
	byMatchId := make(map[int]*repository.CalendarMatch, len(matches))
	for _, match := range matches {
		byMatchId[match.MatchId()] = match
	}
	pending := make([]*PendingMoveRequest, 0, len(requests))
	for _, request := range requests {
		pending = append(pending, &PendingMoveRequest{Request: request, Current: byMatchId[request.MatchId]})
	}
	return pending, nil
}

func (s *RescheduleService) authorizeAwayTeam(user *repository.User, matchId int) error {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return err
	}
	if !capabilities.IsAwayTeamLeader {
		return ErrNotAuthorized
	}
	return nil
}

// ParseProposedDate accepts YYYY-MM-DD. An empty value means no proposal.
func ParseProposedDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &date, nil
}

// ParseProposedTime accepts H:MM or HH:MM and returns it as HH:MM.
func ParseProposedTime(value string) (*string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	kickoff, err := time.Parse("15:04", value)
	if err != nil {
		return nil, ErrInvalidTime
	}
	formatted := kickoff.Format("15:04")
	return &formatted, nil
}

func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(time.DateOnly)
}

func rejectionReason(reason string) string {
	if reason = strings.TrimSpace(reason); reason != "" {
		return reason
	}
	return defaultRejectionReason
}
