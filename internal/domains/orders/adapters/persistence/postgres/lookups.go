package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

var (
	_ ports.UserDirectory  = (*Lookups)(nil)
	_ ports.ZoneLookup     = (*Lookups)(nil)
	_ ports.CatalogLookup  = (*Lookups)(nil)
	_ ports.ShiftDirectory = (*Lookups)(nil)
)

// Lookups resolves the reference data the order service validates against:
// customers, delivery zones, catalog variants and shifts. All reads, no
// ownership of the underlying tables.
type Lookups struct {
	db *gorm.DB
}

func NewLookups(db *gorm.DB) *Lookups {
	return &Lookups{db: db}
}

// UserExists reports ErrUserNotFound for unknown customers.
func (l *Lookups) UserExists(ctx context.Context, userID uuid.UUID) error {
	if err := l.ensureDB(); err != nil {
		return err
	}
	var count int64
	if err := l.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}

// DeliveryCost resolves a user-owned address to its zone's delivery fee.
func (l *Lookups) DeliveryCost(ctx context.Context, userID uuid.UUID, addressID int64) (decimal.Decimal, error) {
	if err := l.ensureDB(); err != nil {
		return decimal.Zero, err
	}
	var fee decimal.Decimal
	err := l.db.WithContext(ctx).
		Table("addresses").
		Select("delivery_zones.delivery_fee").
		Joins("JOIN delivery_zones ON delivery_zones.id = addresses.zone_id").
		Where("addresses.id = ? AND addresses.user_id = ?", addressID, userID).
		Take(&fee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ports.ErrAddressNotFound
		}
		return decimal.Zero, err
	}
	return fee, nil
}

type variantRow struct {
	ID        int64           `gorm:"column:id"`
	Price     decimal.Decimal `gorm:"column:price"`
	Available bool            `gorm:"column:available"`
}

// Variant returns the current price and availability for one variant.
func (l *Lookups) Variant(ctx context.Context, variantID int64) (*ports.VariantQuote, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var row variantRow
	err := l.db.WithContext(ctx).
		Table("product_variants").
		Select("id, price, available").
		Where("id = ?", variantID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrVariantNotFound
		}
		return nil, err
	}
	return &ports.VariantQuote{VariantID: row.ID, UnitPrice: row.Price, Available: row.Available}, nil
}

// ShiftExists reports ErrShiftNotFound for unknown shifts.
func (l *Lookups) ShiftExists(ctx context.Context, shiftID int64) error {
	if err := l.ensureDB(); err != nil {
		return err
	}
	var count int64
	if err := l.db.WithContext(ctx).
		Table("shifts").
		Where("id = ?", shiftID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrShiftNotFound
	}
	return nil
}

func (l *Lookups) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("postgres lookups not configured")
	}
	return nil
}
