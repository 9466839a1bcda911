package mapper

import (
	openapitypes "github.com/oapi-codegen/runtime/types"

	shiftstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
)

// StartShift captures the inbound shift-start payload. StartTime is optional
// and defaults to the current wall-clock time.
type StartShift struct {
	Date      openapitypes.Date `json:"date" binding:"required"`
	Label     string            `json:"label" binding:"required"`
	StartTime string            `json:"startTime,omitempty"`
}

// EndShift captures the inbound shift-end payload.
type EndShift struct {
	EndTime string `json:"endTime,omitempty"`
}

// Shift is the HTTP representation of a shift.
type Shift struct {
	ID        int64             `json:"id"`
	Date      openapitypes.Date `json:"date"`
	Label     string            `json:"label"`
	StartTime string            `json:"startTime"`
	EndTime   *string           `json:"endTime,omitempty"`
	IsActive  bool              `json:"isActive"`
}

// PaymentBreakdownEntry is one payment method's slice of the report.
type PaymentBreakdownEntry struct {
	PaymentID  int64  `json:"paymentId"`
	Name       string `json:"name,omitempty"`
	Orders     int    `json:"orders"`
	Total      string `json:"total"`
	Percentage string `json:"percentage"`
}

// ShiftReport is the HTTP representation of the shift summary. Monetary
// figures render with two decimal places.
type ShiftReport struct {
	ShiftID       int64             `json:"shiftId"`
	Date          openapitypes.Date `json:"date"`
	Label         string            `json:"label"`
	StartTime     string            `json:"startTime"`
	EndTime       *string           `json:"endTime,omitempty"`
	Open          bool              `json:"open"`
	DurationHours float64           `json:"durationHours"`

	TotalOrders     int `json:"totalOrders"`
	DeliveredOrders int `json:"deliveredOrders"`
	CancelledOrders int `json:"cancelledOrders"`

	TotalSales        string `json:"totalSales"`
	TotalDeliveryFees string `json:"totalDeliveryFees"`
	ProductsValue     string `json:"productsValue"`
	AverageOrderValue string `json:"averageOrderValue"`

	PaymentBreakdown []PaymentBreakdownEntry `json:"paymentBreakdown"`
}

// ToStartInput maps the transport payload to the application input.
func ToStartInput(payload StartShift) shiftstypes.StartShiftInput {
	return shiftstypes.StartShiftInput{
		Date:      payload.Date,
		Label:     payload.Label,
		StartTime: payload.StartTime,
	}
}

// FromDomainShift maps a shift to the transport representation.
func FromDomainShift(shift *domain.Shift) Shift {
	if shift == nil {
		return Shift{}
	}
	return Shift{
		ID:        shift.ID,
		Date:      shift.Date,
		Label:     shift.Label,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		IsActive:  shift.IsActive,
	}
}

// FromDomainShiftList maps a list of shifts.
func FromDomainShiftList(shifts []*domain.Shift) []Shift {
	out := make([]Shift, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, FromDomainShift(shift))
	}
	return out
}

// FromReport maps the report structure to transport.
func FromReport(report *shiftstypes.ShiftReport) ShiftReport {
	if report == nil {
		return ShiftReport{}
	}
	breakdown := make([]PaymentBreakdownEntry, 0, len(report.PaymentBreakdown))
	for _, entry := range report.PaymentBreakdown {
		breakdown = append(breakdown, PaymentBreakdownEntry{
			PaymentID:  entry.PaymentID,
			Name:       entry.Name,
			Orders:     entry.Orders,
			Total:      entry.Total.StringFixed(2),
			Percentage: entry.Percentage.StringFixed(2),
		})
	}
	return ShiftReport{
		ShiftID:           report.ShiftID,
		Date:              report.Date,
		Label:             report.Label,
		StartTime:         report.StartTime,
		EndTime:           report.EndTime,
		Open:              report.Open,
		DurationHours:     report.DurationHours,
		TotalOrders:       report.TotalOrders,
		DeliveredOrders:   report.DeliveredOrders,
		CancelledOrders:   report.CancelledOrders,
		TotalSales:        report.TotalSales.StringFixed(2),
		TotalDeliveryFees: report.TotalDeliveryFees.StringFixed(2),
		ProductsValue:     report.ProductsValue.StringFixed(2),
		AverageOrderValue: report.AverageOrderValue.StringFixed(2),
		PaymentBreakdown:  breakdown,
	}
}
