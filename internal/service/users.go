package service

import (
	"context"
	"fmt"

	"election_billing/internal/domain"
	"election_billing/internal/sheets"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login failures share one message so a caller cannot probe which usernames
// exist or which accounts were deactivated.
const genericLoginMessage = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"

// Fallback password applied when a bulk-create entry has none. Carried over
// from the office's trusted seeding workflow; every use is logged.
const bulkDefaultPassword = "password123"

const minPasswordLength = 6

// UserService owns user provisioning and credential handling
type UserService struct {
	db      *gorm.DB
	fetcher *sheets.Fetcher
}

// NewUserService creates a UserService
func NewUserService(db *gorm.DB, fetcher *sheets.Fetcher) *UserService {
	return &UserService{db: db, fetcher: fetcher}
}

// Authenticate matches a username/password pair against an active account.
// Wrong password and deactivated account are indistinguishable to the
// caller.
func (s *UserService) Authenticate(username, password string) (*domain.User, error) {
	var user domain.User
	if err := s.db.Where("username = ? AND is_active = ?", username, true).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, E(KindAuthorization, genericLoginMessage, err)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, E(KindAuthorization, genericLoginMessage, err)
	}
	return &user, nil
}

// ChangePassword verifies the current password and replaces the stored
// hash. Any rejection leaves the hash untouched.
func (s *UserService) ChangePassword(userID uint, current, newPassword, confirm string) error {
	var user domain.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return E(KindNotFound, "ไม่พบผู้ใช้", err)
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return E(KindAuthorization, "รหัสผ่านปัจจุบันไม่ถูกต้อง", err)
	}
	if newPassword != confirm {
		return E(KindValidation, "รหัสผ่านใหม่ไม่ตรงกัน", nil)
	}
	if len(newPassword) < minPasswordLength {
		return E(KindValidation, "รหัสผ่านต้องมีความยาวอย่างน้อย 6 ตัวอักษร", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return err
	}
	logrus.WithField("user_id", userID).Info("Password changed")
	return nil
}

// CreateUserInput carries the fields of one user to provision
type CreateUserInput struct {
	Username     string
	Password     string
	Name         string
	Role         string
	Authority    string
	Team         string
	SupervisorID *string
	Email        *string
	Phone        *string
}

// CreateUser provisions a single user. Duplicate username or email is
// rejected; an empty role falls back to viewer.
func (s *UserService) CreateUser(input CreateUserInput) (*domain.User, error) {
	if input.Password == "" {
		return nil, E(KindValidation, "กรุณาระบุรหัสผ่าน", nil)
	}
	return s.createOne(input)
}

// createOne applies the shared duplicate checks and insert
func (s *UserService) createOne(input CreateUserInput) (*domain.User, error) {
	var existing domain.User
	if err := s.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return nil, E(KindDuplicate, fmt.Sprintf("ชื่อผู้ใช้ %s มีอยู่แล้ว", input.Username), nil)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if input.Email != nil && *input.Email != "" {
		if err := s.db.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
			return nil, E(KindDuplicate, fmt.Sprintf("อีเมล %s มีอยู่แล้ว", *input.Email), nil)
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	role := domain.RoleViewer
	if input.Role != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, E(KindValidation, fmt.Sprintf("บทบาท %s ไม่ถูกต้อง", input.Role), err)
		}
		role = parsed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	email := input.Email
	if email != nil && *email == "" {
		email = nil // Keep the unique index off empty strings
	}
	user := domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         role,
		Authority:    input.Authority,
		Team:         input.Team,
		SupervisorID: input.SupervisorID,
		Email:        email,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, E(KindDuplicate, fmt.Sprintf("ชื่อผู้ใช้ %s มีอยู่แล้ว", input.Username), err)
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     string(user.Role),
	}).Info("User created")
	return &user, nil
}

// BulkCreateUsers provisions a batch with collect-and-continue semantics:
// one entry's failure never aborts the rest. Returns the created count and
// the per-entry error messages.
func (s *UserService) BulkCreateUsers(entries []CreateUserInput) (int, []string) {
	created := 0
	errs := []string{}
	for _, entry := range entries {
		if entry.Password == "" {
			logrus.WithField("username", entry.Username).
				Warn("Bulk entry without password, applying default")
			entry.Password = bulkDefaultPassword
		}
		if _, err := s.createOne(entry); err != nil {
			errs = append(errs, MessageOf(err, fmt.Sprintf("ข้อผิดพลาดสำหรับ %s", entry.Username)))
			continue
		}
		created++
	}
	return created, errs
}

// ImportFromSheet fetches a Google Sheet's CSV export and provisions a user
// per row with the same collect-and-continue policy as bulk creation.
func (s *UserService) ImportFromSheet(ctx context.Context, editURL string) (int, []string, error) {
	exportURL, err := sheets.ExportURL(editURL)
	if err != nil {
		return 0, nil, E(KindValidation, "รูปแบบ URL ไม่ถูกต้อง", err)
	}
	rows, err := s.fetcher.Fetch(ctx, exportURL)
	if err != nil {
		return 0, nil, E(KindExternal, "ไม่สามารถดึงข้อมูลจาก Google Sheets ได้", err)
	}
	created, errs := s.ImportRows(rows)
	return created, errs, nil
}

// ImportRows applies the sheet-import row logic. Rows without a username or
// name are skipped; a missing password falls back to the row's username.
func (s *UserService) ImportRows(rows []sheets.Row) (int, []string) {
	created := 0
	errs := []string{}
	for _, row := range rows {
		username := row.Get("username")
		name := row.Get("name")
		if username == "" || name == "" {
			continue // Incomplete row, not worth an error entry
		}
		password := row.Get("password")
		if password == "" {
			logrus.WithField("username", username).
				Warn("Sheet row without password, using username as password")
			password = username
		}
		role := row.Get("role")
		if role == "" {
			role = string(domain.RoleStaff)
		}
		input := CreateUserInput{
			Username:  username,
			Password:  password,
			Name:      name,
			Role:      role,
			Authority: row.Get("authority"),
			Team:      row.Get("team"),
		}
		if v := row.Get("supervisor"); v != "" {
			input.SupervisorID = &v
		}
		if v := row.Get("email"); v != "" {
			input.Email = &v
		}
		if v := row.Get("phone"); v != "" {
			input.Phone = &v
		}
		if _, err := s.createOne(input); err != nil {
			errs = append(errs, MessageOf(err, fmt.Sprintf("ข้อผิดพลาดสำหรับ %s", username)))
			continue
		}
		created++
	}
	return created, errs
}

// ListUsers returns every account, newest first, for the admin view
func (s *UserService) ListUsers() ([]domain.User, error) {
	var users []domain.User
	if err := s.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
