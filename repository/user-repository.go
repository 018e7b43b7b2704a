package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleTournamentAdmin Role = "TOURNAMENT_ADMIN"
	RoleRefAdmin        Role = "REF_ADMIN"
	RoleClubLeader      Role = "CLUB_LEADER"
	RoleTeamLeader      Role = "TEAM_LEADER"
	RoleSecretariat     Role = "SECRETARIAT"
	RoleReferee         Role = "REFEREE"
	RoleSuperuser       Role = "SUPERUSER"
)

type RoleStatus string

const (
	RoleStatusPending  RoleStatus = "PENDING"
	RoleStatusApproved RoleStatus = "APPROVED"
	RoleStatusRejected RoleStatus = "REJECTED"
)

type User struct {
	ID        string            `gorm:"primaryKey"`
	Username  string            `gorm:"not null;uniqueIndex"`
	Name      *string           `gorm:"null"`
	Roles     []*RoleAssignment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time         `gorm:"not null"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		return strings.TrimSpace(*u.Name)
	}
	return u.Username
}

// RoleAssignment grants a role to a user. Scoped roles carry the club, team,
// hold or referee they apply to; global roles leave all scopes empty.
type RoleAssignment struct {
	ID        string     `gorm:"primaryKey"`
	UserID    string     `gorm:"not null;index"`
	Role      Role       `gorm:"not null"`
	Status    RoleStatus `gorm:"not null"`
	ClubID    *string    `gorm:"null"`
	TeamID    *string    `gorm:"null"`
	HoldID    *string    `gorm:"null"`
	RefereeID *string    `gorm:"null"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

type Referee struct {
	ID        string `gorm:"primaryKey"`
	RefereeNo string `gorm:"not null;index"`
	Name      string `gorm:"not null"`
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId string) (*User, error) {
	var user User
	result := r.DB.Preload("Roles").First(&user, "id = ?", userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(user *User) (*User, error) {
	result := r.DB.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *UserRepository) GetRefereeById(refereeId string) (*Referee, error) {
	referees := make([]*Referee, 0, 1)
	result := r.DB.Where("id = ?", refereeId).Limit(1).Find(&referees)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(referees) == 0 {
		return nil, nil
	}
	return referees[0], nil
}

func (r *UserRepository) CreateReferee(referee *Referee) (*Referee, error) {
	result := r.DB.Create(referee)
	if result.Error != nil {
		return nil, result.Error
	}
	return referee, nil
}
