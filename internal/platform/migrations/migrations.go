package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&deliveryZoneRecord{},
		&addressRecord{},
		&categoryRecord{},
		&productRecord{},
		&sizeRecord{},
		&typeRecord{},
		&productVariantRecord{},
		&paymentMethodRecord{},
		&shiftRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// User schema. Customers are identified by UUID across the API.
type userRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Delivery zones carry the per-zone delivery fee charged at order time.
type deliveryZoneRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name;uniqueIndex"`
	DeliveryFee decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2)"`
}

func (deliveryZoneRecord) TableName() string { return "delivery_zones" }

// Addresses belong to a customer and resolve to one delivery zone. Contact
// phones are stored as a Postgres text array.
type addressRecord struct {
	ID      int64          `gorm:"primaryKey;column:id"`
	UserID  uuid.UUID      `gorm:"column:user_id;type:uuid;index"`
	ZoneID  int64          `gorm:"column:zone_id;index"`
	Details string         `gorm:"column:details"`
	Phones  pq.StringArray `gorm:"column:phones;type:text[]"`

	User userRecord         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Zone deliveryZoneRecord `gorm:"foreignKey:ZoneID;constraint:OnDelete:RESTRICT"`
}

func (addressRecord) TableName() string { return "addresses" }

type categoryRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID         int64  `gorm:"primaryKey;column:id"`
	CategoryID int64  `gorm:"column:category_id;index"`
	Name       string `gorm:"column:name"`

	Category categoryRecord `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (productRecord) TableName() string { return "products" }

type sizeRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (sizeRecord) TableName() string { return "sizes" }

type typeRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (typeRecord) TableName() string { return "types" }

// Product variants are the sellable (product, size, type) combinations. The
// price recorded here is the quote source at order time.
type productVariantRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	ProductID int64           `gorm:"column:product_id;uniqueIndex:idx_variants_combo"`
	SizeID    int64           `gorm:"column:size_id;uniqueIndex:idx_variants_combo"`
	TypeID    int64           `gorm:"column:type_id;uniqueIndex:idx_variants_combo"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Available bool            `gorm:"column:available"`

	Product productRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Size    sizeRecord    `gorm:"foreignKey:SizeID;constraint:OnDelete:RESTRICT"`
	Type    typeRecord    `gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT"`
}

func (productVariantRecord) TableName() string { return "product_variants" }

type paymentMethodRecord struct {
	ID     int64  `gorm:"primaryKey;column:id"`
	Name   string `gorm:"column:name;uniqueIndex"`
	Active bool   `gorm:"column:active;default:true"`
}

func (paymentMethodRecord) TableName() string { return "payment_methods" }

// Shift schema mirrors the shifts Postgres adapter. One label per date.
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

// Order schema mirrors the orders Postgres adapter. Order numbers are unique
// within one shift.
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

	User    userRecord          `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Address addressRecord       `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT"`
	Payment paymentMethodRecord `gorm:"foreignKey:PaymentID;constraint:OnDelete:RESTRICT"`
	Shift   shiftRecord         `gorm:"foreignKey:ShiftID;constraint:OnDelete:RESTRICT"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	VariantID int64           `gorm:"column:variant_id"`
	Quantity  int32           `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2)"`
	Plain     bool            `gorm:"column:plain"`

	Order   orderRecord          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Variant productVariantRecord `gorm:"foreignKey:VariantID;constraint:OnDelete:RESTRICT"`
}

func (orderItemRecord) TableName() string { return "order_items" }
