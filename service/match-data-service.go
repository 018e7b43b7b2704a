package service

import (
	"context"
	"strconv"
	"strings"

	"matchday/client"
	"matchday/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DeletedCounts struct {
	repository.ChildRowCounts
	repository.ApprovalCounts
}

type MatchOverview struct {
	Match  *repository.CalendarMatch
	Status repository.MatchStatus
}

type MatchDataService struct {
	db                   *gorm.DB
	matchDayRepository   *repository.MatchDayRepository
	approvalRepository   *repository.ApprovalRepository
	authorizationService *AuthorizationService
	statusService        *StatusService
	transitions          transitions
}

func NewMatchDataService(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *MatchDataService {
	return &MatchDataService{
		db:                   db,
		matchDayRepository:   repository.NewMatchDayRepository(db),
		approvalRepository:   repository.NewApprovalRepository(db),
		authorizationService: NewAuthorizationService(db),
		statusService:        NewStatusService(db),
		transitions:          newTransitions(publisher, logger),
	}
}

func (s *MatchDataService) GetStatus(user *repository.User, matchId int) (repository.MatchStatus, error) {
	if _, err := s.authorizationService.ForMatch(user, matchId); err != nil {
		return "", err
	}
	return s.statusService.Resolve(matchId)
}

func (s *MatchDataService) GetMatch(user *repository.User, matchId int) (*MatchOverview, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	status, err := s.statusService.Resolve(matchId)
	if err != nil {
		return nil, err
	}
	return &MatchOverview{Match: capabilities.Parties.Match, Status: status}, nil
}

// DeleteMatchData erases every match day row of the match. The calendar
// fixture is kept, so the match can be played again from scratch.
func (s *MatchDataService) DeleteMatchData(ctx context.Context, user *repository.User, matchId int, confirmation string) (*DeletedCounts, error) {
	capabilities, err := s.authorizationService.ForUser(user)
	if err != nil {
		return nil, err
	}
	if !capabilities.HasOverride {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(confirmation) != strconv.Itoa(matchId) {
		return nil, ErrConfirmMismatch
	}

	counts := &DeletedCounts{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		childCounts, err := s.matchDayRepository.WithTx(tx).DeleteForMatch(matchId)
		if err != nil {
			return err
		}
		approvalCounts, err := s.approvalRepository.WithTx(tx).DeleteForMatch(matchId)
		if err != nil {
			return err
		}
		counts.ChildRowCounts = *childCounts
		counts.ApprovalCounts = *approvalCounts
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventMatchDataDeleted, matchId, user.ID, map[string]any{
		"upload_events":     counts.UploadEvents,
		"upload_lineups":    counts.UploadLineups,
		"protocol_events":   counts.ProtocolEvents,
		"protocol_players":  counts.ProtocolPlayers,
		"lineup_approvals":  counts.LineupApprovals,
		"referee_approvals": counts.RefereeApprovals,
		"match_starts":      counts.MatchStarts,
	})
	return counts, nil
}
