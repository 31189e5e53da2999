// Package database provides optional PostgreSQL persistence for the dashboard.
//
// Only question-answering history is stored here; price history lives in the
// local CSV cache file. The database is used when DB_ENABLED=true.
//
// Data Models:
//
//	Data models are defined in the models_pkg package and aliased here.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "fcnca-dashboard/database/models_pkg"
)

// Database holds the GORM database connection
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// DSN builds the PostgreSQL connection string
func DSN(host string, port int, dbname, user, password string) string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	db, err := gorm.Open(postgres.Open(DSN(host, port, dbname, user, password)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type QALog = models.QALog
