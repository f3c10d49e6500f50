package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/amrutdhara/orderbot/internal/config"
	"github.com/amrutdhara/orderbot/internal/models"
)

// For Cloud Run with Cloud SQL
const socketDir = "/cloudsql"

// DSN builds the PostgreSQL connection string for cfg
func DSN(cfg config.Database) string {
	if cfg.InstanceConnectionName != "" {
		// Production: Connect via Unix socket
		return fmt.Sprintf("host=%s/%s user=%s password=%s dbname=%s sslmode=disable",
			socketDir, cfg.InstanceConnectionName, cfg.User, cfg.Password, cfg.Name)
	}
	// Local development: Connect via TCP
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// Connect opens the database. Driver errors are translated so unique
// violations surface as gorm.ErrDuplicatedKey.
func Connect(cfg config.Database) (*gorm.DB, error) {
	if cfg.InstanceConnectionName != "" {
		log.Printf("Connecting to Cloud SQL via socket: %s", cfg.InstanceConnectionName)
	} else {
		log.Printf("Connecting to PostgreSQL at %s:%d", cfg.Host, cfg.Port)
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully!")
	return db, nil
}

// Migrate creates or updates the tables the bot needs
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
