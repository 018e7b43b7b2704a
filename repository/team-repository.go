package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Team is a registered team of a club in one league and season. The same
// HoldID is reused across seasons, so several rows may share it.
type Team struct {
	ID        string    `gorm:"primaryKey"`
	HoldID    *string   `gorm:"null;index"`
	ClubID    *string   `gorm:"null;index"`
	League    string    `gorm:"not null;index:idx_team_league_name"`
	Name      string    `gorm:"not null;index:idx_team_league_name"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (t *Team) Club() string {
	if t == nil || t.ClubID == nil {
		return ""
	}
	return *t.ClubID
}

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) Create(team *Team) (*Team, error) {
	result := r.DB.Create(team)
	if result.Error != nil {
		return nil, result.Error
	}
	return team, nil
}

// GetLatestTeamByHoldId returns the most recently updated team carrying the
// hold id, or nil if there is none.
func (r *TeamRepository) GetLatestTeamByHoldId(holdId string) (*Team, error) {
	holdId = strings.TrimSpace(holdId)
	if holdId == "" {
		return nil, nil
	}
	teams := make([]*Team, 0, 1)
	result := r.DB.Where("hold_id = ?", holdId).Order("updated_at desc").Limit(1).Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(teams) == 0 {
		return nil, nil
	}
	return teams[0], nil
}

// GetTeamByLeagueAndName is the lookup for fixtures imported before hold ids existed.
func (r *TeamRepository) GetTeamByLeagueAndName(league string, name string) (*Team, error) {
	if league == "" || name == "" {
		return nil, nil
	}
	teams := make([]*Team, 0, 1)
	result := r.DB.Where("league = ? AND name = ?", league, name).Order("updated_at desc").Limit(1).Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(teams) == 0 {
		return nil, nil
	}
	return teams[0], nil
}
