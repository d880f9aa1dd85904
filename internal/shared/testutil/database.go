package testutil

import (
	"testing"

	"github.com/sample1/member-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
// The connection is closed automatically when the test ends
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Create in-memory SQLite database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Silent mode for tests
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	// every new :memory: connection is a fresh database
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		CleanupTestDB(t, db)
	})

	// Auto-migrate all models
	err = db.AutoMigrate(
		&model.Numbering{},
		&model.Member{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("Failed to get database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}

// SeedNumbering sets the counter for seqID, creating the row if needed
func SeedNumbering(t *testing.T, db *gorm.DB, seqID string, nextVal int64) {
	t.Helper()

	row := model.Numbering{SeqID: seqID, NextVal: nextVal}
	if err := db.Save(&row).Error; err != nil {
		t.Fatalf("Failed to seed numbering %s: %v", seqID, err)
	}
}
