package database

import (
	"context"
	"testing"

	"github.com/Payphone-Digital/carrental/config"
	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedAdmin(t *testing.T) {
	db := openTestDB(t)
	cfg := config.SeedConfig{
		AdminName:          "Admin",
		AdminEmail:         "Admin@Example.com",
		AdminMobileNumber:  "09170000000",
		AdminPassword:      "secret123",
		AdminLicenseNumber: "A00-00-000000",
	}

	if err := Seed(db, cfg); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// Second run is a no-op
	if err := Seed(db, cfg); err != nil {
		t.Fatalf("Seed() second run error = %v", err)
	}

	var users []model.User
	db.Find(&users)
	if len(users) != 1 {
		t.Fatalf("Expected 1 seeded user, got %d", len(users))
	}

	admin := users[0]
	if admin.Role != "admin" {
		t.Errorf("role = %q, want admin", admin.Role)
	}
	if admin.Email != "admin@example.com" {
		t.Errorf("email = %q, want lowercased", admin.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("secret123")) != nil {
		t.Error("Expected stored password to be a bcrypt digest of the configured one")
	}
}

func TestSeedAdmin_SkippedWithoutMobile(t *testing.T) {
	db := openTestDB(t)

	if err := Seed(db, config.SeedConfig{}); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no users, got %d", count)
	}
}

func TestOptimizedIndexes_SkipsNonPostgres(t *testing.T) {
	db := openTestDB(t)
	if err := OptimizedIndexes(db); err != nil {
		t.Errorf("OptimizedIndexes() error = %v", err)
	}
}

func TestPing(t *testing.T) {
	db := openTestDB(t)

	stats, err := Ping(context.Background(), db)
	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if stats["max_open_connections"] != 1 {
		t.Errorf("max_open_connections = %v, want 1", stats["max_open_connections"])
	}
}
