package memory

import (
	"context"
	"sync"

	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

var _ ports.PaymentDirectory = (*PaymentDirectory)(nil)

// PaymentDirectory is an in-memory payment method name lookup.
type PaymentDirectory struct {
	mu    sync.RWMutex
	names map[int64]string
}

func NewPaymentDirectory() *PaymentDirectory {
	return &PaymentDirectory{names: map[int64]string{}}
}

// Put registers a payment method name.
func (d *PaymentDirectory) Put(id int64, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[id] = name
}

func (d *PaymentDirectory) PaymentNames(_ context.Context) (map[int64]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[int64]string, len(d.names))
	for id, name := range d.names {
		out[id] = name
	}
	return out, nil
}
