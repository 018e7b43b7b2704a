package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchLineupApproval struct {
	ID           int       `gorm:"primaryKey"`
	MatchId      int       `gorm:"not null;uniqueIndex:idx_lineup_approval_venue"`
	Venue        Venue     `gorm:"not null;uniqueIndex:idx_lineup_approval_venue"`
	LeaderName   string    `gorm:"not null"`
	SignaturePng []byte    `gorm:"not null"`
	ApprovedById string    `gorm:"not null"`
	ApprovedAt   time.Time `gorm:"not null"`
}

type MatchRefereeApproval struct {
	ID           int       `gorm:"primaryKey"`
	MatchId      int       `gorm:"not null;uniqueIndex:idx_referee_approval_seat"`
	RefIndex     int       `gorm:"not null;uniqueIndex:idx_referee_approval_seat"`
	Name         string    `gorm:"not null"`
	RefereeNo    string    `gorm:"not null"`
	SignaturePng []byte    `gorm:"not null"`
	NoRef2       bool      `gorm:"not null;default:false"`
	ApprovedById string    `gorm:"not null"`
	ApprovedAt   time.Time `gorm:"not null"`
}

// MatchStart marks a match as started. The first row written for a match is kept.
type MatchStart struct {
	ID          int       `gorm:"primaryKey"`
	MatchId     int       `gorm:"not null;uniqueIndex"`
	StartedAt   time.Time `gorm:"not null"`
	StartedById string    `gorm:"not null"`
}

type ApprovalRepository struct {
	DB *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{DB: db}
}

func (r *ApprovalRepository) WithTx(tx *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{DB: tx}
}

func (r *ApprovalRepository) UpsertLineupApproval(approval *MatchLineupApproval) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("UpsertLineupApproval"))
	defer timer.ObserveDuration()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "venue"}},
		DoUpdates: clause.AssignmentColumns([]string{"leader_name", "signature_png", "approved_by_id", "approved_at"}),
	}).Create(approval).Error
}

func (r *ApprovalRepository) GetLineupApprovals(matchId int) ([]*MatchLineupApproval, error) {
	approvals := make([]*MatchLineupApproval, 0, 2)
	result := r.DB.Where("match_id = ?", matchId).Order("venue asc").Find(&approvals)
	if result.Error != nil {
		return nil, result.Error
	}
	return approvals, nil
}

func (r *ApprovalRepository) GetLineupApproval(matchId int, venue Venue) (*MatchLineupApproval, error) {
	approvals := make([]*MatchLineupApproval, 0, 1)
	result := r.DB.Where("match_id = ? AND venue = ?", matchId, venue).Limit(1).Find(&approvals)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(approvals) == 0 {
		return nil, nil
	}
	return approvals[0], nil
}

func (r *ApprovalRepository) UpsertRefereeApproval(approval *MatchRefereeApproval) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("UpsertRefereeApproval"))
	defer timer.ObserveDuration()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "ref_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "referee_no", "signature_png", "no_ref2", "approved_by_id", "approved_at"}),
	}).Create(approval).Error
}

// GetRefereeApprovals returns the approvals keyed by seat.
func (r *ApprovalRepository) GetRefereeApprovals(matchId int) (map[int]*MatchRefereeApproval, error) {
	approvals := make([]*MatchRefereeApproval, 0, 2)
	result := r.DB.Where("match_id = ?", matchId).Find(&approvals)
	if result.Error != nil {
		return nil, result.Error
	}
	bySeat := make(map[int]*MatchRefereeApproval, len(approvals))
	for _, approval := range approvals {
		bySeat[approval.RefIndex] = approval
	}
	return bySeat, nil
}

// EnsureMatchStart creates the start row unless one exists and returns the stored row.
func (r *ApprovalRepository) EnsureMatchStart(matchId int, actorId string, at time.Time) (*MatchStart, error) {
	start := &MatchStart{MatchId: matchId, StartedAt: at, StartedById: actorId}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}},
		DoNothing: true,
	}).Create(start).Error
	if err != nil {
		return nil, err
	}
	return r.GetMatchStart(matchId)
}

func (r *ApprovalRepository) GetMatchStart(matchId int) (*MatchStart, error) {
	starts := make([]*MatchStart, 0, 1)
	result := r.DB.Where("match_id = ?", matchId).Limit(1).Find(&starts)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(starts) == 0 {
		return nil, nil
	}
	return starts[0], nil
}

type ApprovalCounts struct {
	LineupApprovals  int64 `json:"lineup_approvals"`
	RefereeApprovals int64 `json:"referee_approvals"`
	MatchStarts      int64 `json:"match_starts"`
}

func (r *ApprovalRepository) DeleteForMatch(matchId int) (*ApprovalCounts, error) {
	counts := &ApprovalCounts{}
	result := r.DB.Where("match_id = ?", matchId).Delete(&MatchLineupApproval{})
	if result.Error != nil {
		return nil, result.Error
	}
	counts.LineupApprovals = result.RowsAffected
	result = r.DB.Where("match_id = ?", matchId).Delete(&MatchRefereeApproval{})
	if result.Error != nil {
		return nil, result.Error
	}
	counts.RefereeApprovals = result.RowsAffected
	result = r.DB.Where("match_id = ?", matchId).Delete(&MatchStart{})
	if result.Error != nil {
		return nil, result.Error
	}
	counts.MatchStarts = result.RowsAffected
	return counts, nil
}
