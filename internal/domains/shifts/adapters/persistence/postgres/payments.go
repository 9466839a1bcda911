package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

var _ ports.PaymentDirectory = (*PaymentDirectory)(nil)

// PaymentDirectory reads payment method names for report breakdowns.
type PaymentDirectory struct {
	db *gorm.DB
}

func NewPaymentDirectory(db *gorm.DB) *PaymentDirectory {
	return &PaymentDirectory{db: db}
}

type paymentRow struct {
	ID   int64  `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

func (d *PaymentDirectory) PaymentNames(ctx context.Context) (map[int64]string, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("postgres payment directory not configured")
	}
	var rows []paymentRow
	if err := d.db.WithContext(ctx).
		Table("payment_methods").
		Select("id, name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
