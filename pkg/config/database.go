package config

import (
	"fmt"
	"log"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the relational store handle
type DB struct {
	Gorm *gorm.DB
}

// InitDB opens the configured store and verifies the connection
func InitDB(cfg *Config) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath + "?_foreign_keys=on")
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == "sqlite" {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Successfully connected to %s!", cfg.DBDriver)
	return &DB{Gorm: db}, nil
}

// Migrate creates or updates every table
func (db *DB) Migrate() error {
	if err := db.Gorm.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	return nil
}

// CloseDB closes the underlying connection pool
func (db *DB) CloseDB() {
	if db.Gorm == nil {
		return
	}
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		log.Printf("Error getting SQL DB from GORM: %v\n", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v\n", err)
	} else {
		log.Println("Database connection closed.")
	}
}
