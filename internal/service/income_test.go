package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"election_billing/internal/domain"
	"election_billing/internal/pdf"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedIncome(t *testing.T, gormDB *gorm.DB, userID uint, start, end time.Time, total int64) *domain.IncomeRecord {
	t.Helper()
	record := &domain.IncomeRecord{
		UserID:      userID,
		PeriodStart: start,
		PeriodEnd:   end,
		BaseSalary:  decimal.NewFromInt(total),
		TotalIncome: decimal.NewFromInt(total),
	}
	require.NoError(t, gormDB.Create(record).Error)
	return record
}

func TestListIncome(t *testing.T) {
	gormDB := setupTestDB(t)
	service := NewIncomeService(gormDB, &pdf.StubRenderer{})
	owner := makeUser(t, gormDB, "officer1", domain.RoleStaff, "password123")
	other := makeUser(t, gormDB, "officer2", domain.RoleStaff, "password123")

	jan := seedIncome(t, gormDB, owner.ID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 30000)
	feb := seedIncome(t, gormDB, owner.ID,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 32000)
	seedIncome(t, gormDB, other.ID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 99999)

	t.Run("returns only the owner's records, newest period first", func(t *testing.T) {
		records, err := service.ListIncome(owner.ID, nil, nil)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, feb.ID, records[0].ID)
		assert.Equal(t, jan.ID, records[1].ID)
	})

	t.Run("bounds filter to fully covered periods", func(t *testing.T) {
		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		records, err := service.ListIncome(owner.ID, &start, &end)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, feb.ID, records[0].ID)
	})
}

func TestGenerateIncomeReport(t *testing.T) {
	gormDB := setupTestDB(t)
	renderer := &pdf.StubRenderer{}
	service := NewIncomeService(gormDB, renderer)
	owner := makeUser(t, gormDB, "officer1", domain.RoleStaff, "password123")
	record := seedIncome(t, gormDB, owner.ID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 30000)

	t.Run("renders the records into a named attachment", func(t *testing.T) {
		data, name, err := service.GenerateIncomeReport(context.Background(), owner, []domain.IncomeRecord{*record})
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		expected := fmt.Sprintf("รายงานรายได้_%s_%s.pdf", owner.Username, time.Now().Format("20060102"))
		assert.Equal(t, expected, name)
		require.Len(t, renderer.Rendered, 1)
		assert.Contains(t, renderer.Rendered[0], owner.Name)
		assert.Contains(t, renderer.Rendered[0], "30000.00")
	})

	t.Run("render failure is an external error", func(t *testing.T) {
		renderer.Fail = true
		_, _, err := service.GenerateIncomeReport(context.Background(), owner, nil)
		require.Error(t, err)
		assert.Equal(t, KindExternal, KindOf(err))
	})
}
