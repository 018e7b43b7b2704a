package service

import (
	"context"
	"time"

	"matchday/client"
	"matchday/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MatchLifecycleService struct {
	db                   *gorm.DB
	approvalRepository   *repository.ApprovalRepository
	matchDayRepository   *repository.MatchDayRepository
	authorizationService *AuthorizationService
	statusService        *StatusService
	transitions          transitions
}

func NewMatchLifecycleService(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *MatchLifecycleService {
	return &MatchLifecycleService{
		db:                   db,
		approvalRepository:   repository.NewApprovalRepository(db),
		matchDayRepository:   repository.NewMatchDayRepository(db),
		authorizationService: NewAuthorizationService(db),
		statusService:        NewStatusService(db),
		transitions:          newTransitions(publisher, logger),
	}
}

// Start records the match start once and moves every open row to live.
// Repeated calls keep the original start time.
func (s *MatchLifecycleService) Start(ctx context.Context, user *repository.User, matchId int) (*repository.MatchStart, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanManageMatch() {
		return nil, ErrNotAuthorized
	}
	for _, venue := range repository.Venues {
		approval, err := s.approvalRepository.GetLineupApproval(matchId, venue)
		if err != nil {
			return nil, err
		}
		if approval == nil {
			return nil, ErrMissingApprovals
		}
	}

	var start *repository.MatchStart
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		start, err = s.approvalRepository.WithTx(tx).EnsureMatchStart(matchId, user.ID, time.Now())
		if err != nil {
			return err
		}
		return s.matchDayRepository.WithTx(tx).MarkLive(matchId)
	})
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventMatchStarted, matchId, user.ID, map[string]any{
		"started_at": start.StartedAt,
	})
	return start, nil
}

// Close locks the match for ordinary editing. It needs a start and the
// referee signatures, where seat 2 is waived by noRef2 on seat 1.
func (s *MatchLifecycleService) Close(ctx context.Context, user *repository.User, matchId int) (repository.MatchStatus, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return "", err
	}
	if !capabilities.CanManageMatch() {
		return "", ErrNotAuthorized
	}
	closed, err := s.statusService.IsClosed(matchId)
	if err != nil {
		return "", err
	}
	if closed {
		return "", ErrAlreadyClosed
	}
	start, err := s.approvalRepository.GetMatchStart(matchId)
	if err != nil {
		return "", err
	}
	if start == nil {
		return "", ErrMatchNotStarted
	}
	referees, err := s.approvalRepository.GetRefereeApprovals(matchId)
	if err != nil {
		return "", err
	}
	first, ok := referees[1]
	if !ok {
		return "", ErrMissingRef1
	}
	if _, ok := referees[2]; !ok && !first.NoRef2 {
		return "", ErrMissingRef2
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.matchDayRepository.WithTx(tx).MarkClosed(matchId)
	})
	if err != nil {
		return "", err
	}
	s.transitions.record(ctx, client.EventMatchClosed, matchId, user.ID, map[string]any{
		"no_ref2": first.NoRef2,
	})
	return repository.MatchStatusClosed, nil
}
