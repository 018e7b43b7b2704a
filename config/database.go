package config

import (
	"fmt"

	"matchday/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func Dsn(cfg *Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.PostgresUser, cfg.PostgresPassword, cfg.DatabaseName, cfg.DatabaseSchema)
}

// GormConfig is shared by the server and the integration tests.
func GormConfig(schemaName string) *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   schemaName + ".",
			SingularTable: false,
		},
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(Dsn(cfg)), GormConfig(cfg.DatabaseSchema))
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db, cfg.DatabaseSchema); err != nil {
		return nil, err
	}
	return db, nil
}
