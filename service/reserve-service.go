package service

import (
	"context"
	"strings"

	"matchday/client"
	"matchday/repository"
	"matchday/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxReserves = 60

type ReserveService struct {
	db                   *gorm.DB
	matchDayRepository   *repository.MatchDayRepository
	authorizationService *AuthorizationService
	statusService        *StatusService
	transitions          transitions
}

func NewReserveService(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *ReserveService {
	return &ReserveService{
		db:                   db,
		matchDayRepository:   repository.NewMatchDayRepository(db),
		authorizationService: NewAuthorizationService(db),
		statusService:        NewStatusService(db),
		transitions:          newTransitions(publisher, logger),
	}
}

// SetReserves replaces the venue's reserve marks with exactly the given jersey
// numbers. Leader rows are never marked.
func (s *ReserveService) SetReserves(ctx context.Context, user *repository.User, matchId int, venueValue string, numbers []string) ([]*repository.MatchUploadLineup, error) {
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
	if !capabilities.HasOverride {
		closed, err := s.statusService.IsClosed(matchId)
		if err != nil {
			return nil, err
		}
		if closed {
			return nil, ErrMatchLocked
		}
	}

	reserved := NormalizeReserveNumbers(numbers)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.matchDayRepository.WithTx(tx).ReplaceReserves(matchId, venue, reserved)
	})
	if err != nil {
		return nil, err
	}
	s.transitions.record(ctx, client.EventReservesUpdated, matchId, user.ID, map[string]any{
		"venue":    string(venue),
		"reserves": reserved,
	})
	return s.matchDayRepository.GetLineup(matchId, venue)
}

// NormalizeReserveNumbers trims, drops blanks and duplicates, and caps the list.
func NormalizeReserveNumbers(numbers []string) []string {
	trimmed := utils.Map(numbers, strings.TrimSpace)
	reserved := utils.Uniques(utils.Filter(trimmed, func(n string) bool { return n != "" }))
	if len(reserved) > maxReserves {
		reserved = reserved[:maxReserves]
	}
	return reserved
}
