package service

import (
	"context"
	"fmt"
	"time"

	"election_billing/internal/domain"
	"election_billing/internal/pdf"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// IncomeService owns the per-staff income views and the downloadable report
type IncomeService struct {
	db       *gorm.DB
	renderer pdf.Renderer
}

// NewIncomeService creates an IncomeService
func NewIncomeService(db *gorm.DB, renderer pdf.Renderer) *IncomeService {
	return &IncomeService{db: db, renderer: renderer}
}

// ListIncome returns a user's own income records, newest period first,
// optionally bounded by the period range.
func (s *IncomeService) ListIncome(userID uint, start, end *time.Time) ([]domain.IncomeRecord, error) {
	query := s.db.Where("user_id = ?", userID)
	if start != nil && end != nil {
		query = query.Where("period_start >= ?", *start).Where("period_end <= ?", *end)
	}
	var records []domain.IncomeRecord
	if err := query.Order("period_start desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GenerateIncomeReport renders the user's records into a downloadable PDF.
// Returns the artifact bytes and the attachment file name.
func (s *IncomeService) GenerateIncomeReport(ctx context.Context, user *domain.User, records []domain.IncomeRecord) ([]byte, string, error) {
	html, err := pdf.IncomeReportHTML(user, records)
	if err != nil {
		return nil, "", err
	}
	data, err := s.renderer.Render(ctx, html)
	if err != nil {
		return nil, "", E(KindExternal, "เกิดข้อผิดพลาดในการสร้างรายงาน", err)
	}
	name := fmt.Sprintf("รายงานรายได้_%s_%s.pdf", user.Username, time.Now().Format("20060102"))
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"records": len(records),
	}).Info("Income report generated")
	return data, name, nil
}
