package service

import (
	"context"
	"testing"

	"election_billing/internal/domain"
	"election_billing/internal/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	gormDB := setupTestDB(t)
	service := NewUserService(gormDB, sheets.NewFetcher())
	makeUser(t, gormDB, "officer1", domain.RoleStaff, "password123")
	inactive := makeUser(t, gormDB, "former", domain.RoleStaff, "password123")
	require.NoError(t, gormDB.Model(inactive).Update("is_active", false).Error)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Authenticate("officer1", "password123")
		require.NoError(t, err)
		assert.Equal(t, "officer1", user.Username)
	})

	t.Run("wrong password and deactivated account are indistinguishable", func(t *testing.T) {
		_, wrongPass := service.Authenticate("officer1", "nope")
		require.Error(t, wrongPass)
		_, deactivated := service.Authenticate("former", "password123")
		require.Error(t, deactivated)
		_, unknown := service.Authenticate("ghost", "password123")
		require.Error(t, unknown)

		assert.Equal(t, KindAuthorization, KindOf(wrongPass))
		assert.Equal(t, KindAuthorization, KindOf(deactivated))
		assert.Equal(t, MessageOf(wrongPass, ""), MessageOf(deactivated, ""))
		assert.Equal(t, MessageOf(wrongPass, ""), MessageOf(unknown, ""))
	})
}

func TestChangePassword(t *testing.T) {
	hashOf := func(t *testing.T, service *UserService, id uint) string {
		t.Helper()
		var user domain.User
		require.NoError(t, service.db.First(&user, id).Error)
		return user.PasswordHash
	}

	t.Run("rejections leave the stored hash untouched", func(t *testing.T) {
		gormDB := setupTestDB(t)
		service := NewUserService(gormDB, sheets.NewFetcher())
		user := makeUser(t, gormDB, "officer1", domain.RoleStaff, "password123")
		before := hashOf(t, service, user.ID)

		wrongCurrent := service.ChangePassword(user.ID, "nope", "newpass12", "newpass12")
		assert.Equal(t, KindAuthorization, KindOf(wrongCurrent))

		mismatch := service.ChangePassword(user.ID, "password123", "newpass12", "different")
		assert.Equal(t, KindValidation, KindOf(mismatch))

		tooShort := service.ChangePassword(user.ID, "password123", "abc", "abc")
		assert.Equal(t, KindValidation, KindOf(tooShort))

		assert.Equal(t, before, hashOf(t, service, user.ID))
	})

	t.Run("accepted change replaces the hash", func(t *testing.T) {
		gormDB := setupTestDB(t)
		service := NewUserService(gormDB, sheets.NewFetcher())
		user := makeUser(t, gormDB, "officer1", domain.RoleStaff, "password123")
		before := hashOf(t, service, user.ID)

		require.NoError(t, service.ChangePassword(user.ID, "password123", "newpass12", "newpass12"))
		after := hashOf(t, service, user.ID)
		assert.NotEqual(t, before, after)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after), []byte("newpass12")))
	})
}

func TestCreateUser(t *testing.T) {
	gormDB := setupTestDB(t)
	service := NewUserService(gormDB, sheets.NewFetcher())

	t.Run("provisions with defaults", func(t *testing.T) {
		user, err := service.CreateUser(CreateUserInput{
			Username:  "clerk1",
			Password:  "secret99",
			Name:      "เสมียน หนึ่ง",
			Authority: "สำนักงานเลือกตั้งจังหวัด",
			Team:      "ทีมธุรการ",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleViewer, user.Role)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret99")))
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := service.CreateUser(CreateUserInput{Username: "clerk2", Name: "เสมียน สอง"})
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := service.CreateUser(CreateUserInput{Username: "clerk1", Password: "secret99", Name: "ซ้ำ"})
		require.Error(t, err)
		assert.Equal(t, KindDuplicate, KindOf(err))
		assert.Contains(t, MessageOf(err, ""), "clerk1")
	})

	t.Run("duplicate email", func(t *testing.T) {
		email := "clerk3@example.com"
		_, err := service.CreateUser(CreateUserInput{Username: "clerk3", Password: "secret99", Name: "สาม", Email: &email})
		require.NoError(t, err)
		_, err = service.CreateUser(CreateUserInput{Username: "clerk4", Password: "secret99", Name: "สี่", Email: &email})
		require.Error(t, err)
		assert.Equal(t, KindDuplicate, KindOf(err))
		assert.Contains(t, MessageOf(err, ""), email)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := service.CreateUser(CreateUserInput{Username: "clerk5", Password: "secret99", Name: "ห้า", Role: "root"})
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestBulkCreateUsers(t *testing.T) {
	gormDB := setupTestDB(t)
	service := NewUserService(gormDB, sheets.NewFetcher())
	makeUser(t, gormDB, "existing", domain.RoleStaff, "password123")

	created, errs := service.BulkCreateUsers([]CreateUserInput{
		{Username: "bulk1", Password: "secret99", Name: "หนึ่ง", Role: "staff"},
		{Username: "existing", Password: "secret99", Name: "ซ้ำ"},
		{Username: "bulk3", Name: "สาม"}, // no password, default applies
	})
	assert.Equal(t, 2, created)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "existing")

	// Rows before and after the failing one are persisted
	var count int64
	gormDB.Model(&domain.User{}).Where("username IN ?", []string{"bulk1", "bulk3"}).Count(&count)
	assert.EqualValues(t, 2, count)

	// The defaulted password is usable
	_, err := service.Authenticate("bulk3", "password123")
	assert.NoError(t, err)
}

func TestImportRows(t *testing.T) {
	gormDB := setupTestDB(t)
	service := NewUserService(gormDB, sheets.NewFetcher())

	created, errs := service.ImportRows([]sheets.Row{
		{"username": "sheet1", "name": "นำเข้า หนึ่ง", "password": "secret99", "role": "officer", "email": "sheet1@example.com"},
		{"username": "sheet2", "name": "นำเข้า สอง"},   // password falls back to username, role to staff
		{"username": "", "name": "ไม่มีชื่อผู้ใช้"},     // skipped, no error entry
		{"username": "sheet1", "name": "ซ้ำ", "password": "x"},
	})
	assert.Equal(t, 2, created)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "sheet1")

	var imported domain.User
	require.NoError(t, gormDB.Where("username = ?", "sheet2").First(&imported).Error)
	assert.Equal(t, domain.RoleStaff, imported.Role)
	_, err := service.Authenticate("sheet2", "sheet2")
	assert.NoError(t, err)

	require.NoError(t, gormDB.Where("username = ?", "sheet1").First(&imported).Error)
	assert.Equal(t, domain.RoleOfficer, imported.Role)
	require.NotNil(t, imported.Email)
	assert.Equal(t, "sheet1@example.com", *imported.Email)
}

func TestImportFromSheetBadURL(t *testing.T) {
	gormDB := setupTestDB(t)
	service := NewUserService(gormDB, sheets.NewFetcher())

	_, _, err := service.ImportFromSheet(context.Background(), "https://example.com/not-a-sheet")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}
