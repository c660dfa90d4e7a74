package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
		OTP: config.OTPConfig{
			TTLMinutes: 15,
		},
		Plans: config.PlansConfig{
			Free:    config.PlanConfig{MonthlyLimit: 3},
			Premium: config.PlanConfig{Unlimited: true},
		},
		Auth: config.AuthConfig{
			BcryptCost:                 bcrypt.MinCost,
			RequireVerifiedForOptimize: true,
		},
	}
}

// setupMockDB returns a gorm handle backed by sqlmock for store-failure cases.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm on sqlmock: %v", err)
	}

	cleanup := func() {
		sqlDB.Close()
	}

	return db, mock, cleanup
}

func utcNow() time.Time {
	return time.Now().UTC()
}
