package db

import (
	"election_billing/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"golang.org/x/crypto/bcrypt" // Password hashing for seeded accounts
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to MySQL with duplicate-key translation enabled, which the
// number allocator relies on.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema and seeds
// the default accounts.
func Migrate(dsn string) {
	db, err := Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := SeedDefaultUsers(db); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
	logrus.Info("Migration completed.")
}

// AutoMigrate creates tables, foreign keys, constraints, columns and indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Bill{},
		&domain.Document{},
		&domain.Delivery{},
		&domain.IncomeRecord{},
		&domain.ApiLog{},
	)
}

// SeedDefaultUsers creates the bootstrap admin and officer accounts when
// absent. Passwords match the office's provisioning handbook and are
// expected to be rotated after first login.
func SeedDefaultUsers(db *gorm.DB) error {
	seeds := []struct {
		user     domain.User
		password string
	}{
		{
			user: domain.User{
				Username:  "admin",
				Name:      "ผู้ดูแลระบบ",
				Role:      domain.RoleAdmin,
				Authority: "กรมการปกครอง",
				Team:      "ทีมพัฒนาระบบ",
				Email:     strPtr("admin@election.gov.th"),
				IsActive:  true,
			},
			password: "admin123",
		},
		{
			user: domain.User{
				Username:  "officer1",
				Name:      "เจ้าหน้าที่ 1",
				Role:      domain.RoleOfficer,
				Authority: "สำนักงานเลือกตั้งจังหวัด",
				Team:      "ทีมการเงิน",
				Email:     strPtr("officer1@election.gov.th"),
				IsActive:  true,
			},
			password: "password123",
		},
	}
	for _, seed := range seeds {
		var existing domain.User
		err := db.Where("username = ?", seed.user.Username).First(&existing).Error
		if err == nil {
			continue // Already provisioned
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		seed.user.PasswordHash = string(hash)
		if err := db.Create(&seed.user).Error; err != nil {
			return err
		}
		logrus.WithField("username", seed.user.Username).Info("Seeded default user")
	}
	return nil
}

func strPtr(s string) *string { return &s }
