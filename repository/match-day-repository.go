package repository

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchStatusOpen   MatchStatus = "open"
	MatchStatusLive   MatchStatus = "live"
	MatchStatusClosed MatchStatus = "closed"
)

type Venue string

const (
	VenueHome Venue = "Hjemme"
	VenueAway Venue = "Ude"
)

var Venues = []Venue{VenueHome, VenueAway}

// ParseVenue accepts the venue labels case-insensitively and returns the canonical form.
func ParseVenue(value string) (Venue, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hjemme":
		return VenueHome, true
	case "ude":
		return VenueAway, true
	}
	return "", false
}

const (
	LeaderMark  = "L"
	ReserveMark = "R"
)

// MatchProtocolPlayer is a draft player row entered by the scoring table.
type MatchProtocolPlayer struct {
	ID       int     `gorm:"primaryKey"`
	MatchId  int     `gorm:"not null;index"`
	Side     string  `gorm:"not null"`
	RowIndex int     `gorm:"not null"`
	Number   *string `gorm:"null"`
	Name     *string `gorm:"null"`
	Role     *string `gorm:"null"`
	Status   *string `gorm:"null"`
}

type MatchProtocolEvent struct {
	ID       int     `gorm:"primaryKey"`
	MatchId  int     `gorm:"not null;index"`
	RowIndex int     `gorm:"not null"`
	Period   *string `gorm:"null"`
	Time     *string `gorm:"null"`
	Side     *string `gorm:"null"`
	Number   *string `gorm:"null"`
	Event    *string `gorm:"null"`
	Status   *string `gorm:"null"`
}

// MatchUploadLineup is the published lineup snapshot. Leader and Reserve are
// mutually exclusive marks.
type MatchUploadLineup struct {
	ID       int     `gorm:"primaryKey"`
	MatchId  int     `gorm:"not null;uniqueIndex:idx_upload_lineup_row"`
	Venue    Venue   `gorm:"not null;uniqueIndex:idx_upload_lineup_row"`
	RowIndex int     `gorm:"not null;uniqueIndex:idx_upload_lineup_row"`
	Number   *string `gorm:"null"`
	Name     *string `gorm:"null"`
	Birthday *string `gorm:"null"`
	Leader   *string `gorm:"null"`
	Reserve  *string `gorm:"null"`
	Status   *string `gorm:"null"`
}

func (l *MatchUploadLineup) IsLeader() bool {
	return l.Leader != nil && strings.ToUpper(strings.TrimSpace(*l.Leader)) == LeaderMark
}

func (l *MatchUploadLineup) IsReserve() bool {
	return l.Reserve != nil && strings.ToUpper(strings.TrimSpace(*l.Reserve)) == ReserveMark
}

type MatchUploadEvent struct {
	ID       int     `gorm:"primaryKey"`
	MatchId  int     `gorm:"not null;uniqueIndex:idx_upload_event_row"`
	Venue    Venue   `gorm:"not null;uniqueIndex:idx_upload_event_row"`
	RowIndex int     `gorm:"not null;uniqueIndex:idx_upload_event_row"`
	Period   *string `gorm:"null"`
	Time     *string `gorm:"null"`
	Number   *string `gorm:"null"`
	Event    *string `gorm:"null"`
	Status   *string `gorm:"null"`
}

// childModels are the four row sets that together carry a match's status.
var childModels = []any{
	&MatchProtocolPlayer{},
	&MatchProtocolEvent{},
	&MatchUploadLineup{},
	&MatchUploadEvent{},
}

const nonLeaderCondition = "(leader IS NULL OR trim(leader) = '' OR upper(trim(leader)) <> 'L')"

type MatchDayRepository struct {
	DB *gorm.DB
}

func NewMatchDayRepository(db *gorm.DB) *MatchDayRepository {
	return &MatchDayRepository{DB: db}
}

func (r *MatchDayRepository) WithTx(tx *gorm.DB) *MatchDayRepository {
	return &MatchDayRepository{DB: tx}
}

// DistinctStatuses returns every non-null status found across the four row sets.
func (r *MatchDayRepository) DistinctStatuses(matchId int) ([]string, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("DistinctStatuses"))
	defer timer.ObserveDuration()
	statuses := make([]string, 0)
	for _, model := range childModels {
		found := make([]string, 0)
		err := r.DB.Model(model).
			Where("match_id = ? AND status IS NOT NULL", matchId).
			Distinct().
			Pluck("status", &found).Error
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, found...)
	}
	return statuses, nil
}

// MarkLive upgrades rows without a status or with status open. Closed rows are left alone.
func (r *MatchDayRepository) MarkLive(matchId int) error {
	for _, model := range childModels {
		err := r.DB.Model(model).
			Where("match_id = ? AND (status IS NULL OR lower(trim(status)) = ?)", matchId, string(MatchStatusOpen)).
			Update("status", string(MatchStatusLive)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *MatchDayRepository) MarkClosed(matchId int) error {
	for _, model := range childModels {
		err := r.DB.Model(model).
			Where("match_id = ?", matchId).
			Update("status", string(MatchStatusClosed)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *MatchDayRepository) MarkVenueLineupLive(matchId int, venue Venue) (int64, error) {
	result := r.DB.Model(&MatchUploadLineup{}).
		Where("match_id = ? AND venue = ?", matchId, venue).
		Update("status", string(MatchStatusLive))
	return result.RowsAffected, result.Error
}

func (r *MatchDayRepository) GetLineup(matchId int, venue Venue) ([]*MatchUploadLineup, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetLineup"))
	defer timer.ObserveDuration()
	rows := make([]*MatchUploadLineup, 0)
	result := r.DB.Where("match_id = ? AND venue = ?", matchId, venue).Order("row_index asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// ReplaceReserves clears the reserve mark on every non-leader row of the venue
// and then sets it on the rows whose number is listed.
func (r *MatchDayRepository) ReplaceReserves(matchId int, venue Venue, numbers []string) error {
	err := r.DB.Model(&MatchUploadLineup{}).
		Where("match_id = ? AND venue = ?", matchId, venue).
		Where(nonLeaderCondition).
		Update("reserve", nil).Error
	if err != nil {
		return err
	}
	if len(numbers) == 0 {
		return nil
	}
	return r.DB.Model(&MatchUploadLineup{}).
		Where("match_id = ? AND venue = ? AND trim(number) IN ?", matchId, venue, numbers).
		Where(nonLeaderCondition).
		Update("reserve", ReserveMark).Error
}

type ChildRowCounts struct {
	UploadEvents    int64 `json:"upload_events"`
	UploadLineups   int64 `json:"upload_lineups"`
	ProtocolEvents  int64 `json:"protocol_events"`
	ProtocolPlayers int64 `json:"protocol_players"`
}

// DeleteForMatch removes every child row of the match and reports how many were deleted per set.
func (r *MatchDayRepository) DeleteForMatch(matchId int) (*ChildRowCounts, error) {
	counts := &ChildRowCounts{}
	targets := []struct {
		model any
		count *int64
	}{
		{&MatchUploadEvent{}, &counts.UploadEvents},
		{&MatchUploadLineup{}, &counts.UploadLineups},
		{&MatchProtocolEvent{}, &counts.ProtocolEvents},
		{&MatchProtocolPlayer{}, &counts.ProtocolPlayers},
	}
	for _, target := range targets {
		result := r.DB.Where("match_id = ?", matchId).Delete(target.model)
		if result.Error != nil {
			return nil, result.Error
		}
		*target.count = result.RowsAffected
	}
	return counts, nil
}
