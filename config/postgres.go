package config

import (
	"errors"
	"os"
	"time"

	"github.com/hireboard/api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgres() (*gorm.DB, error) {
	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		return nil, errors.New("POSTGRES_URI environment variable is not set")
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.CandidateTag{},
		&models.ApplicationTag{},
		&models.JobAlert{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
