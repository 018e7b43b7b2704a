package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type MoveRequestStatus string

const (
	MoveRequestPendingAway MoveRequestStatus = "PENDING_AWAY"
	MoveRequestPendingTa   MoveRequestStatus = "PENDING_TA"
	MoveRequestApproved    MoveRequestStatus = "APPROVED"
	MoveRequestRejected    MoveRequestStatus = "REJECTED"
)

var ActiveMoveRequestStatuses = []MoveRequestStatus{MoveRequestPendingAway, MoveRequestPendingTa}

type MatchMoveRequest struct {
	ID              string            `gorm:"primaryKey"`
	MatchId         int               `gorm:"not null;index"`
	Status          MoveRequestStatus `gorm:"not null;index"`
	ProposedDate    *time.Time        `gorm:"null;type:date"`
	ProposedTime    *string           `gorm:"null;type:varchar(5)"`
	Note            *string           `gorm:"null"`
	CreatedById     string            `gorm:"not null"`
	AwayDecidedById *string           `gorm:"null"`
	AwayDecidedAt   *time.Time        `gorm:"null"`
	TaDecidedById   *string           `gorm:"null"`
	TaDecidedAt     *time.Time        `gorm:"null"`
	RejectionReason *string           `gorm:"null"`
	CreatedAt       time.Time         `gorm:"not null"`
	UpdatedAt       time.Time         `gorm:"not null"`

	CreatedBy     *User `gorm:"foreignKey:CreatedById;references:ID"`
	AwayDecidedBy *User `gorm:"foreignKey:AwayDecidedById;references:ID"`
	TaDecidedBy   *User `gorm:"foreignKey:TaDecidedById;references:ID"`
}

func (m *MatchMoveRequest) IsActive() bool {
	return m.Status == MoveRequestPendingAway || m.Status == MoveRequestPendingTa
}

type MoveRequestRepository struct {
	DB *gorm.DB
}

func NewMoveRequestRepository(db *gorm.DB) *MoveRequestRepository {
	return &MoveRequestRepository{DB: db}
}

func (r *MoveRequestRepository) WithTx(tx *gorm.DB) *MoveRequestRepository {
	return &MoveRequestRepository{DB: tx}
}

func (r *MoveRequestRepository) Create(request *MatchMoveRequest) (*MatchMoveRequest, error) {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	result := r.DB.Omit("CreatedBy", "AwayDecidedBy", "TaDecidedBy").Create(request)
	if result.Error != nil {
		return nil, result.Error
	}
	return request, nil
}

func (r *MoveRequestRepository) withUsers() *gorm.DB {
	return r.DB.Preload("CreatedBy").Preload("AwayDecidedBy").Preload("TaDecidedBy")
}

func (r *MoveRequestRepository) GetById(requestId string) (*MatchMoveRequest, error) {
	var request MatchMoveRequest
	result := r.withUsers().First(&request, "id = ?", requestId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &request, nil
}

func (r *MoveRequestRepository) GetActiveForMatch(matchId int) (*MatchMoveRequest, error) {
	requests := make([]*MatchMoveRequest, 0, 1)
	result := r.DB.Where("match_id = ? AND status IN ?", matchId, ActiveMoveRequestStatuses).
		Order("created_at desc").Limit(1).Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return requests[0], nil
}

// GetLatestForMatch returns the newest request of the match regardless of status.
func (r *MoveRequestRepository) GetLatestForMatch(matchId int) (*MatchMoveRequest, error) {
	requests := make([]*MatchMoveRequest, 0, 1)
	result := r.withUsers().Where("match_id = ?", matchId).Order("created_at desc").Limit(1).Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return requests[0], nil
}

func (r *MoveRequestRepository) GetPendingTa() ([]*MatchMoveRequest, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetPendingTa"))
	defer timer.ObserveDuration()
	requests := make([]*MatchMoveRequest, 0)
	result := r.withUsers().Where("status = ?", MoveRequestPendingTa).Order("created_at asc").Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}
	return requests, nil
}

// TransitionForMatch moves the match's request from one status to the next in
// a single statement. Zero affected rows means no request was in the expected status.
func (r *MoveRequestRepository) TransitionForMatch(matchId int, from MoveRequestStatus, updates map[string]any) (int64, error) {
	updates["updated_at"] = time.Now()
	result := r.DB.Model(&MatchMoveRequest{}).
		Where("match_id = ? AND status = ?", matchId, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *MoveRequestRepository) TransitionById(requestId string, from MoveRequestStatus, updates map[string]any) (int64, error) {
	updates["updated_at"] = time.Now()
	result := r.DB.Model(&MatchMoveRequest{}).
		Where("id = ? AND status = ?", requestId, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}
