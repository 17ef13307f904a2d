package services

import (
	"testing"

	"github.com/amitjangid17/SVJSS/v1/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.Member{},
		&models.MembershipRequest{},
		&models.UpdateRequest{},
		&models.MemberUpdateLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestData removes all test data from the database.
// Exported for use in handler tests.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	if err := db.Exec("DELETE FROM member_update_logs").Error; err != nil {
		t.Logf("Warning: failed to cleanup member_update_logs: %v", err)
	}
	if err := db.Exec("DELETE FROM update_requests").Error; err != nil {
		t.Logf("Warning: failed to cleanup update_requests: %v", err)
	}
	if err := db.Exec("DELETE FROM membership_requests").Error; err != nil {
		t.Logf("Warning: failed to cleanup membership_requests: %v", err)
	}
	if err := db.Exec("DELETE FROM members").Error; err != nil {
		t.Logf("Warning: failed to cleanup members: %v", err)
	}
}
