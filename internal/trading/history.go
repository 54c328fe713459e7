package trading

import (
	"context"
	"strconv"

	"stock_simulator/internal/domain"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// HistoryPage is one page of a user's transactions, newest first
type HistoryPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"total_pages"`
}

// PageParams turns raw query values into a page number and size.
// Invalid or out-of-range values fall back to the defaults.
func PageParams(pageRaw, sizeRaw string) (page, pageSize int) {
	page, pageSize = 1, DefaultPageSize
	if v, err := strconv.Atoi(pageRaw); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(sizeRaw); err == nil && v > 0 && v <= MaxPageSize {
		pageSize = v
	}
	return page, pageSize
}

// History returns one page of the user's transactions
func (s *Service) History(ctx context.Context, userID uint, page, pageSize int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	// Session makes the scoped query safe to reuse for both statements
	db := s.DB.WithContext(ctx).Model(&domain.Transaction{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}
	transactions := make([]domain.Transaction, 0, pageSize)
	if err := db.Order("created_at desc").Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return &HistoryPage{
		Transactions: transactions,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
		TotalPages:   (int(total) + pageSize - 1) / pageSize,
	}, nil
}
