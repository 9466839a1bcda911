package postgres

import (
	"context"
	"errors"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists shifts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed shift repository. Caller manages DB
// lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// shiftRecord maps a shift to its relational table. The unique index on
// (date, label) is the backstop for duplicate shift starts.
type shiftRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Date      time.Time `gorm:"column:date;type:date;uniqueIndex:idx_shifts_date_label"`
	Label     string    `gorm:"column:label;uniqueIndex:idx_shifts_date_label"`
	StartTime string    `gorm:"column:start_time;type:varchar(8)"`
	EndTime   *string   `gorm:"column:end_time;type:varchar(8)"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (shiftRecord) TableName() string { return "shifts" }

// Create inserts a new shift. A duplicate (date, label) surfaces as
// ports.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, errors.New("shift is nil")
	}
	record := toRecord(shift)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicate
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches one shift.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shiftRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns shifts, most recent date first.
func (r *Repository) List(ctx context.Context, skip, limit int) ([]*domain.Shift, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&shiftRecord{}).Order("date DESC, id DESC")
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []shiftRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByDate returns all shifts on one calendar date.
func (r *Repository) ListByDate(ctx context.Context, date openapitypes.Date) ([]*domain.Shift, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shiftRecord
	if err := r.db.WithContext(ctx).
		Where("date = ?", date.Time.Format("2006-01-02")).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// OpenExists reports whether a shift for the date and label is still open.
func (r *Repository) OpenExists(ctx context.Context, date openapitypes.Date, label string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shiftRecord{}).
		Where("date = ? AND label = ? AND end_time IS NULL", date.Time.Format("2006-01-02"), label).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update loads the shift under a row lock, applies the mutation and persists
// the result in the same transaction.
func (r *Repository) Update(ctx context.Context, id int64, apply func(*domain.Shift) error) (*domain.Shift, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Shift
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record shiftRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		shift := record.toDomain()
		if err := apply(shift); err != nil {
			return err
		}
		if err := tx.Model(&shiftRecord{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"end_time":   shift.EndTime,
				"is_active":  shift.IsActive,
				"updated_at": gorm.Expr("NOW()"),
			}).Error; err != nil {
			return err
		}
		updated = shift
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shift repository not configured")
	}
	return nil
}

func toRecord(shift *domain.Shift) shiftRecord {
	return shiftRecord{
		ID:        shift.ID,
		Date:      shift.Date.Time,
		Label:     shift.Label,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		IsActive:  shift.IsActive,
	}
}

func (r shiftRecord) toDomain() *domain.Shift {
	return &domain.Shift{
		ID:        r.ID,
		Date:      openapitypes.Date{Time: r.Date},
		Label:     r.Label,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsActive:  r.IsActive,
	}
}

func toDomainList(records []shiftRecord) []*domain.Shift {
	shifts := make([]*domain.Shift, 0, len(records))
	for i := range records {
		shifts = append(shifts, records[i].toDomain())
	}
	return shifts
}
