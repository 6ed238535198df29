package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hirestack/recruit-api/internal/models"
)

// InitDatabase opens the connection and migrates the schema. The returned
// handle is injected everywhere; nothing else in the process opens its own
// connection. Pair with CloseDatabase at shutdown.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("database connected and migrated")
	return db, nil
}

// Migrate registers the join table and runs auto-migration for every
// persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Context{}, "Documents", &models.ContextDocument{}); err != nil {
		return fmt.Errorf("failed to set up context_documents join table: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Applicant{},
		&models.JobPost{},
		&models.Application{},
		&models.StageHistoryEntry{},
		&models.Interview{},
		&models.InterviewInvitation{},
		&models.Document{},
		&models.Context{},
		&models.CandidateRanking{},
		&models.Chat{},
		&models.ChatMessage{},
		&models.RankingJob{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDatabase releases the underlying connection pool.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
