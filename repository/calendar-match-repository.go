package repository

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// CalendarMatch is the scheduled fixture as imported from the federation's
// match program. ExternalId holds the match id every match-day table keys on.
type CalendarMatch struct {
	ID           string     `gorm:"primaryKey"`
	ExternalId   string     `gorm:"not null;uniqueIndex"`
	Date         *time.Time `gorm:"null;type:date"`
	Time         *string    `gorm:"null;type:varchar(5)"`
	League       string     `gorm:"not null"`
	Pool         string     `gorm:"not null;default:''"`
	VenueKey     string     `gorm:"not null;default:''"`
	HomeTeam     string     `gorm:"not null"`
	AwayTeam     string     `gorm:"not null"`
	HomeHoldId   *string    `gorm:"null"`
	AwayHoldId   *string    `gorm:"null"`
	Referee1Name *string    `gorm:"null;column:referee1_name"`
	Referee1Id   *string    `gorm:"null;column:referee1_id"`
	Referee2Name *string    `gorm:"null;column:referee2_name"`
	Referee2Id   *string    `gorm:"null;column:referee2_id"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// MatchId parses the external id; fixtures without a numeric id return 0.
func (m *CalendarMatch) MatchId() int {
	id, err := strconv.Atoi(m.ExternalId)
	if err != nil {
		return 0
	}
	return id
}

type CalendarMatchRepository struct {
	DB *gorm.DB
}

func NewCalendarMatchRepository(db *gorm.DB) *CalendarMatchRepository {
	return &CalendarMatchRepository{DB: db}
}

func (r *CalendarMatchRepository) WithTx(tx *gorm.DB) *CalendarMatchRepository {
	return &CalendarMatchRepository{DB: tx}
}

func (r *CalendarMatchRepository) Create(match *CalendarMatch) (*CalendarMatch, error) {
	result := r.DB.Create(match)
	if result.Error != nil {
		return nil, result.Error
	}
	return match, nil
}

func (r *CalendarMatchRepository) GetByMatchId(matchId int) (*CalendarMatch, error) {
	var match CalendarMatch
	result := r.DB.First(&match, "external_id = ?", strconv.Itoa(matchId))
	if result.Error != nil {
		return nil, result.Error
	}
	return &match, nil
}

func (r *CalendarMatchRepository) GetByMatchIds(matchIds []int) ([]*CalendarMatch, error) {
	matches := make([]*CalendarMatch, 0, len(matchIds))
	if len(matchIds) == 0 {
		return matches, nil
	}
	externalIds := make([]string, len(matchIds))
	for i, id := range matchIds {
		externalIds[i] = strconv.Itoa(id)
	}
	result := r.DB.Find(&matches, "external_id IN ?", externalIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}

// UpdateRefereeIdentity writes the signing referee onto the fixture. When
// clearSecondSeat is set the second referee is removed.
func (r *CalendarMatchRepository) UpdateRefereeIdentity(matchId int, seat int, name string, refereeNo string, clearSecondSeat bool) error {
	updates := map[string]any{}
	if seat == 1 {
		updates["referee1_name"] = name
		updates["referee1_id"] = refereeNo
		if clearSecondSeat {
			updates["referee2_name"] = nil
			updates["referee2_id"] = nil
		}
	} else {
		updates["referee2_name"] = name
		updates["referee2_id"] = refereeNo
	}
	updates["updated_at"] = time.Now()
	return r.DB.Model(&CalendarMatch{}).Where("external_id = ?", strconv.Itoa(matchId)).Updates(updates).Error
}

// UpdateSchedule moves the fixture. Nil values leave the stored field untouched.
func (r *CalendarMatchRepository) UpdateSchedule(matchId int, date *time.Time, kickoff *string) (int64, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if date != nil {
		updates["date"] = *date
	}
	if kickoff != nil {
		updates["time"] = *kickoff
	}
	result := r.DB.Model(&CalendarMatch{}).Where("external_id = ?", strconv.Itoa(matchId)).Updates(updates)
	return result.RowsAffected, result.Error
}
