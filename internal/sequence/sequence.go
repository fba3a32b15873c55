// Package sequence allocates the date-stamped document numbers used across
// the system (BILL-YYYYMMDD-NNNN, DOC-YYYYMMDD-NNNN, TRK-YYYYMMDD-NNNN).
//
// Numbers are derived from the highest value already persisted for the
// current day rather than a row count, and creation sites retry on a
// duplicate-key conflict, so two concurrent writers cannot both keep the
// same number.
package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Prefixes for the three number families
const (
	BillPrefix     = "BILL"
	DocumentPrefix = "DOC"
	TrackingPrefix = "TRK"
)

// Format renders a number as PFX-YYYYMMDD-NNNN. The counter is zero-padded
// to four digits and widens naturally past 9999.
func Format(prefix string, day time.Time, n int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), n)
}

// Next returns the next free number for the prefix and day by looking up the
// highest value already stored in table.column. It must run inside the same
// transaction as the insert that uses the number.
func Next(tx *gorm.DB, table, column, prefix string, day time.Time) (string, error) {
	pattern := fmt.Sprintf("%s-%s-%%", prefix, day.Format("20060102"))
	var current string
	err := tx.Table(table).
		Select(column).
		Where(column+" LIKE ?", pattern).
		// length-first ordering keeps 10000 above 9999 once the counter widens
		Order(fmt.Sprintf("length(%s) desc, %s desc", column, column)).
		Limit(1).
		Scan(&current).Error
	if err != nil {
		return "", err
	}
	n := 1
	if current != "" {
		idx := strings.LastIndex(current, "-")
		v, convErr := strconv.Atoi(current[idx+1:])
		if convErr != nil {
			return "", fmt.Errorf("malformed %s number %q: %w", prefix, current, convErr)
		}
		n = v + 1
	}
	return Format(prefix, day, n), nil
}

const maxAttempts = 5

// WithRetry runs fn again while it fails with a duplicate-key conflict, up
// to a bounded number of attempts. Each attempt must re-read the sequence so
// the retried insert picks up a fresh number.
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}
