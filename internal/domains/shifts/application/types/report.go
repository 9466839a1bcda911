package types

import (
	openapitypes "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// PaymentBreakdownEntry is one payment method's slice of a shift's sales.
type PaymentBreakdownEntry struct {
	PaymentID  int64
	Name       string
	Orders     int
	Total      decimal.Decimal
	Percentage decimal.Decimal
}

// ShiftReport is the per-shift summary computed over all orders the shift
// collected. All monetary figures and the percentage are rounded to two
// decimal places; duration is in hours, also two decimal places.
type ShiftReport struct {
	ShiftID   int64
	Date      openapitypes.Date
	Label     string
	StartTime string
	EndTime   *string
	Open      bool

	DurationHours float64

	TotalOrders     int
	DeliveredOrders int
	CancelledOrders int

	TotalSales        decimal.Decimal
	TotalDeliveryFees decimal.Decimal
	ProductsValue     decimal.Decimal
	AverageOrderValue decimal.Decimal

	PaymentBreakdown []PaymentBreakdownEntry
}
