package service

import (
	"strings"

	"matchday/repository"

	"gorm.io/gorm"
)

// DeriveStatus reduces the statuses written by the different editors of a
// match to one value. The most advanced status wins: closed over live over open.
func DeriveStatus(statuses []string) repository.MatchStatus {
	live := false
	for _, status := range statuses {
		switch repository.MatchStatus(strings.ToLower(strings.TrimSpace(status))) {
		case repository.MatchStatusClosed:
			return repository.MatchStatusClosed
		case repository.MatchStatusLive:
			live = true
		}
	}
	if live {
		return repository.MatchStatusLive
	}
	return repository.MatchStatusOpen
}

type StatusService struct {
	matchDayRepository *repository.MatchDayRepository
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{
		matchDayRepository: repository.NewMatchDayRepository(db),
	}
}

func (s *StatusService) Resolve(matchId int) (repository.MatchStatus, error) {
	statuses, err := s.matchDayRepository.DistinctStatuses(matchId)
	if err != nil {
		return "", err
	}
	return DeriveStatus(statuses), nil
}

func (s *StatusService) IsClosed(matchId int) (bool, error) {
	status, err := s.Resolve(matchId)
	if err != nil {
		return false, err
	}
	return status == repository.MatchStatusClosed, nil
}
