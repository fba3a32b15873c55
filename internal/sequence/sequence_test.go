package sequence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type numberedRow struct {
	ID     uint   `gorm:"primaryKey"`
	Number string `gorm:"uniqueIndex;size:30"`
}

func (numberedRow) TableName() string { return "numbered_rows" }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&numberedRow{}))
	return db
}

func insert(t *testing.T, db *gorm.DB, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		require.NoError(t, db.Create(&numberedRow{Number: n}).Error)
	}
}

func TestFormat(t *testing.T) {
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "BILL-20260829-0001", Format(BillPrefix, day, 1))
	assert.Equal(t, "TRK-20260829-9999", Format(TrackingPrefix, day, 9999))
	// The counter widens rather than wrapping
	assert.Equal(t, "DOC-20260829-10000", Format(DocumentPrefix, day, 10000))
}

func TestNext(t *testing.T) {
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("first number of the day", func(t *testing.T) {
		db := openDB(t)
		got, err := Next(db, "numbered_rows", "number", BillPrefix, day)
		require.NoError(t, err)
		assert.Equal(t, "BILL-20260829-0001", got)
	})

	t.Run("continues from the highest existing number", func(t *testing.T) {
		db := openDB(t)
		insert(t, db, "BILL-20260829-0001", "BILL-20260829-0007", "BILL-20260829-0003")
		got, err := Next(db, "numbered_rows", "number", BillPrefix, day)
		require.NoError(t, err)
		assert.Equal(t, "BILL-20260829-0008", got)
	})

	t.Run("other days and prefixes are invisible", func(t *testing.T) {
		db := openDB(t)
		insert(t, db, "BILL-20260828-0042", "DOC-20260829-0042")
		got, err := Next(db, "numbered_rows", "number", BillPrefix, day)
		require.NoError(t, err)
		assert.Equal(t, "BILL-20260829-0001", got)
	})

	t.Run("widened counters sort above four-digit ones", func(t *testing.T) {
		db := openDB(t)
		insert(t, db, "BILL-20260829-9999", "BILL-20260829-10000")
		got, err := Next(db, "numbered_rows", "number", BillPrefix, day)
		require.NoError(t, err)
		assert.Equal(t, "BILL-20260829-10001", got)
	})

	t.Run("malformed stored number is reported", func(t *testing.T) {
		db := openDB(t)
		insert(t, db, "BILL-20260829-abcd")
		_, err := Next(db, "numbered_rows", "number", BillPrefix, day)
		require.Error(t, err)
	})
}

func TestWithRetry(t *testing.T) {
	t.Run("retries duplicate-key conflicts until success", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			if calls < 3 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(func() error {
			calls++
			return gorm.ErrDuplicatedKey
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
		assert.Equal(t, maxAttempts, calls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := WithRetry(func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
