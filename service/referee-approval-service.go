package service

import (
	"context"
	"time"

	"matchday/client"
	"matchday/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RefereeApprovalInput struct {
	RefIndex  int
	Name      string
	RefereeNo string
	Signature string
	NoRef2    bool
}

type RefereeApprovalService struct {
	db                      *gorm.DB
	approvalRepository      *repository.ApprovalRepository
	calendarMatchRepository *repository.CalendarMatchRepository
	authorizationService    *AuthorizationService
	statusService           *StatusService
	transitions             transitions
}

func NewRefereeApprovalService(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *RefereeApprovalService {
	return &RefereeApprovalService{
		db:                      db,
		approvalRepository:      repository.NewApprovalRepository(db),
		calendarMatchRepository: repository.NewCalendarMatchRepository(db),
		authorizationService:    NewAuthorizationService(db),
		statusService:           NewStatusService(db),
		transitions:             newTransitions(publisher, logger),
	}
}

// Approve stores the referee's signature for one seat and makes the signing
// referee the one on record for the fixture.
func (s *RefereeApprovalService) Approve(ctx context.Context, user *repository.User, matchId int, input RefereeApprovalInput) (*repository.MatchRefereeApproval, error) {
	capabilities, err := s.authorizationService.ForMatch(user, matchId)
	if err != nil {
		return nil, err
	}
	if !capabilities.CanManageMatch() {
		return nil, ErrNotAuthorized
	}
	if input.RefIndex != 1 && input.RefIndex != 2 {
		return nil, ErrInvalidRefIndex
	}
	name := normalizeText(input.Name)
	if name == "" {
		return nil, ErrMissingName
	}
	refereeNo := normalizeText(input.RefereeNo)
	if refereeNo == "" {
		return nil, ErrMissingRefNo
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
	start, err := s.approvalRepository.GetMatchStart(matchId)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, ErrMatchNotStarted
	}

	// noRef2 only has a meaning on the first seat
	noRef2 := input.NoRef2 && input.RefIndex == 1
	approval := &repository.MatchRefereeApproval{
		MatchId:      matchId,
		RefIndex:     input.RefIndex,
		Name:         name,
		RefereeNo:    refereeNo,
		SignaturePng: signature,
		NoRef2:       noRef2,
		ApprovedById: user.ID,
		ApprovedAt:   time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.approvalRepository.WithTx(tx).UpsertRefereeApproval(approval); err != nil {
			return err
		}
		return s.calendarMatchRepository.WithTx(tx).UpdateRefereeIdentity(matchId, input.RefIndex, name, refereeNo, noRef2)
	})
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventRefereeApproved, matchId, user.ID, map[string]any{
		"seat":       input.RefIndex,
		"referee":    name,
		"referee_no": refereeNo,
		"no_ref2":    noRef2,
	})
	return approval, nil
}
