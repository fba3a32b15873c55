package service

import (
	"testing"

	"election_billing/internal/db"
	"election_billing/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gormDB))
	return gormDB
}

// makeUser persists a user with the given role and password
func makeUser(t *testing.T, gormDB *gorm.DB, username string, role domain.Role, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         "ทดสอบ " + username,
		Role:         role,
		Authority:    "สำนักงานทดสอบ",
		Team:         "ทีมทดสอบ",
		IsActive:     true,
	}
	require.NoError(t, gormDB.Create(user).Error)
	return user
}
