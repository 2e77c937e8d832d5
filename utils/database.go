package utils

import (
	"fmt"

	"scrooge/config"
	"scrooge/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := MigrateDB(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateDB runs the schema migration for every entity. Shared with the
// test setup, which runs against sqlite instead of postgres.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Member{},
		&models.Level{},
		&models.Avatar{},
		&models.Badge{},
		&models.Quest{},
		&models.MemberOwningAvatar{},
		&models.MemberOwningBadge{},
		&models.MemberSelectedQuest{},
		&models.PaymentHistory{},
		&models.DailySettlement{},
		&models.Challenge{},
		&models.ChallengeParticipant{},
		&models.ChallengeAuth{},
		&models.Article{},
	)
}
