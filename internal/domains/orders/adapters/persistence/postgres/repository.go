package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// numberingAttempts bounds the retry loop when two transactions race for the
// same shift-scoped order number. The per-shift row lock makes collisions
// rare; the unique index on (shift_id, order_number) makes them harmless.
const numberingAttempts = 3

// Repository persists order aggregates in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order header to a relational table.
type orderRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;index"`
	AddressID     int64           `gorm:"column:address_id"`
	PaymentID     int64           `gorm:"column:payment_id"`
	ShiftID       int64           `gorm:"column:shift_id;uniqueIndex:idx_orders_shift_number"`
	OrderNumber   int             `gorm:"column:order_number;uniqueIndex:idx_orders_shift_number"`
	PlacedAt      time.Time       `gorm:"column:placed_at;index"`
	DeliveryFee   decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2)"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:numeric(10,2)"`
	Status        string          `gorm:"column:status;type:varchar(32);index"`
	CustomerNotes *string         `gorm:"column:customer_notes"`
	ExternalNotes *string         `gorm:"column:external_notes"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord maps one priced line item.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	VariantID int64           `gorm:"column:variant_id"`
	Quantity  int32           `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2)"`
	Plain     bool            `gorm:"column:plain"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// itemNameRow carries an item joined to its catalog names for projections.
type itemNameRow struct {
	orderItemRecord
	ProductName string `gorm:"column:product_name"`
	SizeName    string `gorm:"column:size_name"`
	TypeName    string `gorm:"column:type_name"`
}

// Create assigns the next shift-scoped order number and writes the header
// plus all items in one transaction. The shift row is locked FOR UPDATE so
// concurrent orders in the same shift serialize on the number.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*types.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}

	var createdID int64
	var err error
	for attempt := 0; attempt < numberingAttempts; attempt++ {
		createdID, err = r.createOnce(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, translateWriteError(err)
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrNumberingConflict
		}
		return nil, translateWriteError(err)
	}
	return r.GetByID(ctx, createdID)
}

func (r *Repository) createOnce(ctx context.Context, order *domain.Order) (int64, error) {
	var createdID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize numbering per shift.
		var shiftID int64
		if err := tx.Table("shifts").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", order.ShiftID).
			Take(&shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrInvalidReference
			}
			return err
		}

		var maxNumber int
		if err := tx.Model(&orderRecord{}).
			Where("shift_id = ?", order.ShiftID).
			Select("COALESCE(MAX(order_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		record := toRecord(order)
		record.OrderNumber = maxNumber + 1
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		items := make([]orderItemRecord, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, orderItemRecord{
				OrderID:   record.ID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.Subtotal,
				Plain:     item.Plain,
			})
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		createdID = record.ID
		return nil
	})
	return createdID, err
}

// GetByID fetches one order with its items and resolved catalog names.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var rows []itemNameRow
	if err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.*, products.name AS product_name, sizes.name AS size_name, types.name AS type_name").
		Joins("JOIN product_variants ON product_variants.id = order_items.variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Joins("JOIN sizes ON sizes.id = product_variants.size_id").
		Joins("JOIN types ON types.id = product_variants.type_id").
		Where("order_items.order_id = ?", id).
		Order("order_items.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	projection := &types.OrderProjection{Order: record.toDomain(), Items: make([]types.OrderItemView, 0, len(rows))}
	for _, row := range rows {
		projection.Order.Items = append(projection.Order.Items, row.orderItemRecord.toDomain())
		projection.Items = append(projection.Items, types.OrderItemView{
			Item:        row.orderItemRecord.toDomain(),
			ProductName: row.ProductName,
			SizeName:    row.SizeName,
			TypeName:    row.TypeName,
		})
	}
	return projection, nil
}

// List returns recent orders, newest first.
func (r *Repository) List(ctx context.Context, skip, limit int) ([]*domain.Order, error) {
	return r.list(ctx, skip, limit, nil)
}

// ListByUser returns one customer's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Order, error) {
	return r.list(ctx, skip, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

// ListByUserAndStatuses filters one customer's orders by status set.
func (r *Repository) ListByUserAndStatuses(ctx context.Context, userID uuid.UUID, statuses []domain.Status, skip, limit int) ([]*domain.Order, error) {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return r.list(ctx, skip, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND status IN ?", userID, values)
	})
}

// ListByShift returns every order in a shift, newest first.
func (r *Repository) ListByShift(ctx context.Context, shiftID int64) ([]*domain.Order, error) {
	return r.list(ctx, 0, 0, func(q *gorm.DB) *gorm.DB {
		return q.Where("shift_id = ?", shiftID)
	})
}

func (r *Repository) list(ctx context.Context, skip, limit int, scope func(*gorm.DB) *gorm.DB) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{}).Order("placed_at DESC, id DESC")
	if scope != nil {
		query = scope(query)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// Transition loads the order under a row lock, applies the mutation and
// persists the result in the same transaction.
func (r *Repository) Transition(ctx context.Context, id int64, apply func(*domain.Order) error) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		order := record.toDomain()
		if err := apply(order); err != nil {
			return err
		}
		if err := tx.Model(&orderRecord{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":     string(order.Status),
				"updated_at": gorm.Expr("NOW()"),
			}).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ports.ErrInvalidReference
	}
	return err
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:            order.ID,
		UserID:        order.UserID,
		AddressID:     order.AddressID,
		PaymentID:     order.PaymentID,
		ShiftID:       order.ShiftID,
		OrderNumber:   order.OrderNumber,
		PlacedAt:      order.PlacedAt,
		DeliveryFee:   order.DeliveryFee,
		TotalPrice:    order.TotalPrice,
		Status:        string(order.Status),
		CustomerNotes: order.CustomerNotes,
		ExternalNotes: order.ExternalNotes,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		AddressID:     r.AddressID,
		PaymentID:     r.PaymentID,
		ShiftID:       r.ShiftID,
		OrderNumber:   r.OrderNumber,
		PlacedAt:      r.PlacedAt,
		DeliveryFee:   r.DeliveryFee,
		TotalPrice:    r.TotalPrice,
		Status:        domain.Status(r.Status),
		CustomerNotes: r.CustomerNotes,
		ExternalNotes: r.ExternalNotes,
	}
}

func (r orderItemRecord) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ID:        r.ID,
		OrderID:   r.OrderID,
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Subtotal:  r.Subtotal,
		Plain:     r.Plain,
	}
}
