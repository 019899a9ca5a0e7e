package database

import (
	"fmt"
	"os"

	"bus-buddy/logger"
	"bus-buddy/models/buslocation"
	"bus-buddy/models/log"
	"bus-buddy/models/pass"
	"bus-buddy/models/systemlog"
	"bus-buddy/models/ticket"
	"bus-buddy/models/tripcounter"
	"bus-buddy/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database connection, runs migrations and creates the
// secondary indexes. The returned handle is injected into every component
// that needs it; nothing reads it from a package global.
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return db, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&pass.Pass{},
		&pass.ActivePassMarker{},
		&pass.PassCard{},
		&ticket.Ticket{},
		&tripcounter.TripCounter{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		&buslocation.BusLocation{},
		&systemlog.SystemLog{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// User indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create user uuid index: %w", err)
	}

	// Pass indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_passes_user_id ON passes(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create pass user_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_passes_user_end ON passes(user_id, end_date)").Error; err != nil {
		return fmt.Errorf("failed to create pass user_id/end_date index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_passes_created_at ON passes(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create pass created_at index: %w", err)
	}

	// Ticket indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_user_id ON tickets(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create ticket user_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create ticket created_at index: %w", err)
	}

	// System log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_system_logs_created_at ON system_logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create system_log created_at index: %w", err)
	}

	// Request log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}
