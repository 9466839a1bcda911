package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
)

var (
	_ ports.UserDirectory  = (*Directory)(nil)
	_ ports.ZoneLookup     = (*Directory)(nil)
	_ ports.CatalogLookup  = (*Directory)(nil)
	_ ports.ShiftDirectory = (*Directory)(nil)
)

type variantEntry struct {
	quote       ports.VariantQuote
	productName string
	sizeName    string
	typeName    string
}

// Directory is an in-memory stand-in for the reference-data lookups the
// order service depends on: users, delivery zones, catalog variants and
// shifts. Tests seed it with Put* calls.
type Directory struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]bool
	addresses map[uuid.UUID]map[int64]decimal.Decimal
	variants  map[int64]variantEntry
	shifts    map[int64]bool
}

func NewDirectory() *Directory {
	return &Directory{
		users:     map[uuid.UUID]bool{},
		addresses: map[uuid.UUID]map[int64]decimal.Decimal{},
		variants:  map[int64]variantEntry{},
		shifts:    map[int64]bool{},
	}
}

// PutUser registers a user.
func (d *Directory) PutUser(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[id] = true
}

// PutAddress registers a user-owned address and the delivery fee its zone
// charges.
func (d *Directory) PutAddress(userID uuid.UUID, addressID int64, fee decimal.Decimal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.addresses[userID] == nil {
		d.addresses[userID] = map[int64]decimal.Decimal{}
	}
	d.addresses[userID][addressID] = fee
}

// PutVariant registers a sellable catalog variant.
func (d *Directory) PutVariant(quote ports.VariantQuote, productName, sizeName, typeName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.variants[quote.VariantID] = variantEntry{
		quote:       quote,
		productName: productName,
		sizeName:    sizeName,
		typeName:    typeName,
	}
}

// PutShift registers a shift that orders may attach to.
func (d *Directory) PutShift(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shifts[id] = true
}

func (d *Directory) UserExists(_ context.Context, id uuid.UUID) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.users[id] {
		return ports.ErrUserNotFound
	}
	return nil
}

func (d *Directory) DeliveryCost(_ context.Context, userID uuid.UUID, addressID int64) (decimal.Decimal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fee, ok := d.addresses[userID][addressID]
	if !ok {
		return decimal.Zero, ports.ErrAddressNotFound
	}
	return fee, nil
}

func (d *Directory) Variant(_ context.Context, variantID int64) (*ports.VariantQuote, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.variants[variantID]
	if !ok {
		return nil, ports.ErrVariantNotFound
	}
	quote := entry.quote
	return &quote, nil
}

func (d *Directory) ShiftExists(_ context.Context, id int64) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.shifts[id] {
		return ports.ErrShiftNotFound
	}
	return nil
}

func (d *Directory) variantNames(variantID int64) (product, size, kind string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry := d.variants[variantID]
	return entry.productName, entry.sizeName, entry.typeName
}
