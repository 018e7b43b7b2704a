package service

import (
	"context"
	"time"

	"matchday/client"
	"matchday/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LineupApprovalInput struct {
	Venue      string
	LeaderName string
	Signature  string
}

// ApprovalOverview is what the secretariat sees before starting the match.
type ApprovalOverview struct {
	Approvals  []*repository.MatchLineupApproval
	MatchStart *repository.MatchStart
}

type LineupApprovalService struct {
	db                   *gorm.DB
	approvalRepository   *repository.ApprovalRepository
	matchDayRepository   *repository.MatchDayRepository
	authorizationService *AuthorizationService
	statusService        *StatusService
	transitions          transitions
}

func NewLineupApprovalService(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *LineupApprovalService {
	return &LineupApprovalService{
		db:                   db,
		approvalRepository:   repository.NewApprovalRepository(db),
		matchDayRepository:   repository.NewMatchDayRepository(db),
		authorizationService: NewAuthorizationService(db),
		statusService:        NewStatusService(db),
		transitions:          newTransitions(publisher, logger),
	}
}

// Approve stores the leader's signed approval of one venue's lineup and marks
// that venue's lineup rows live.
func (s *LineupApprovalService) Approve(ctx context.Context, user *repository.User, matchId int, input LineupApprovalInput) (*repository.MatchLineupApproval, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanManageMatch() {
		return nil, ErrNotAuthorized
	}
	venue, ok := repository.ParseVenue(input.Venue)
	if !ok {
		return nil, ErrInvalidVenue
	}
	leaderName := normalizeText(input.LeaderName)
	if leaderName == "" {
		return nil, ErrMissingLeader
	}
	signature, err := ParseSignature(input.Signature)
	if err != nil {
		return nil, err
	}
	if !capabilities.HasOverride {
		closed, err := s.statusService.IsClosed(matchId)
		if err != nil {
			return nil, err
		}
		if closed {
			return nil, ErrMatchLocked
		}
	}

	lineup, err := s.matchDayRepository.GetLineup(matchId, venue)
	if err != nil {
		return nil, err
	}
	if len(lineup) == 0 {
		return nil, ErrNoLineup
	}
	if !hasLeader(lineup, leaderName) {
		return nil, ErrLeaderNotInLineup
	}

	approval := &repository.MatchLineupApproval{
		MatchId:      matchId,
		Venue:        venue,
		LeaderName:   leaderName,
		SignaturePng: signature,
		ApprovedById: user.ID,
		ApprovedAt:   time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.approvalRepository.WithTx(tx).UpsertLineupApproval(approval); err != nil {
			return err
		}
		_, err := s.matchDayRepository.WithTx(tx).MarkVenueLineupLive(matchId, venue)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventLineupApproved, matchId, user.ID, map[string]any{
		"venue":  string(venue),
		"leader": leaderName,
	})
	return s.approvalRepository.GetLineupApproval(matchId, venue)
}

func (s *LineupApprovalService) Overview(user *repository.User, matchId int) (*ApprovalOverview, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanManageMatch() {
		return nil, ErrNotAuthorized
	}
	approvals, err := s.approvalRepository.GetLineupApprovals(matchId)
	if err != nil {
		return nil, err
	}
	start, err := s.approvalRepository.GetMatchStart(matchId)
	if err != nil {
		return nil, err
	}
	return &ApprovalOverview{Approvals: approvals, MatchStart: start}, nil
}

func (s *LineupApprovalService) Signature(user *repository.User, matchId int, venueValue string) ([]byte, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanManageMatch() {
		return nil, ErrNotAuthorized
	}
	venue, ok := repository.ParseVenue(venueValue)
	if !ok {
		return nil, ErrInvalidVenue
	}
	approval, err := s.approvalRepository.GetLineupApproval(matchId, venue)
	if err != nil {
		return nil, err
	}
	if approval == nil || len(approval.SignaturePng) == 0 {
		return nil, ErrSignatureNotFound
	}
	return approval.SignaturePng, nil
}

func hasLeader(lineup []*repository.MatchUploadLineup, leaderName string) bool {
	for _, row := range lineup {
		if row.IsLeader() && row.Name != nil && sameName(*row.Name, leaderName) {
			return true
		}
	}
	return false
}
