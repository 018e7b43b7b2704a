package repository

import (
	"fmt"

	"gorm.io/gorm"
)

func Models() []any {
	return []any{
		&User{},
		&RoleAssignment{},
		&Referee{},
		&Team{},
		&CalendarMatch{},
		&MatchProtocolPlayer{},
		&MatchProtocolEvent{},
		&MatchUploadLineup{},
		&MatchUploadEvent{},
		&MatchLineupApproval{},
		&MatchRefereeApproval{},
		&MatchStart{},
		&MatchMoveRequest{},
	}
}

func indexQueries(schema string) []string {
	return []string{
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS idx_move_request_active ON %s.match_move_requests (match_id) WHERE status IN ('PENDING_AWAY', 'PENDING_TA')`, schema),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_move_request_pending_ta ON %s.match_move_requests (created_at) WHERE status = 'PENDING_TA'`, schema),
	}
}

// Migrate creates all tables in the schema plus the indexes gorm tags cannot express.
func Migrate(db *gorm.DB, schema string) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	for _, query := range indexQueries(schema) {
		if err := db.Exec(query).Error; err != nil {
			return fmt.Errorf("index migration failed: %w", err)
		}
	}
	return nil
}
