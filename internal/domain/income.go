package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeRecord Model. TotalIncome is caller-supplied and expected to equal
// base + allowances + overtime + bonuses - deductions; the store does not
// recompute it.
type IncomeRecord struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                 // Primary key
	UserID      uint            `gorm:"not null;index" json:"user_id"`        // Owning user
	PeriodStart time.Time       `gorm:"type:date;not null" json:"period_start"` // Start of the pay period
	PeriodEnd   time.Time       `gorm:"type:date;not null" json:"period_end"`   // End of the pay period
	BaseSalary  decimal.Decimal `gorm:"type:decimal(10,2)" json:"base_salary"`  // Base salary component
	Allowances  decimal.Decimal `gorm:"type:decimal(10,2)" json:"allowances"`   // Allowance component
	Overtime    decimal.Decimal `gorm:"type:decimal(10,2)" json:"overtime"`     // Overtime component
	Bonuses     decimal.Decimal `gorm:"type:decimal(10,2)" json:"bonuses"`      // Bonus component
	Deductions  decimal.Decimal `gorm:"type:decimal(10,2)" json:"deductions"`   // Deduction component
	TotalIncome decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_income"` // Caller-supplied total
	Notes       string          `gorm:"type:text" json:"notes"`               // Free-text notes
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (IncomeRecord) TableName() string { return "income_records" }
