package application

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
)

var hundred = decimal.NewFromInt(100)

// buildReport aggregates a shift's orders into the summary structure.
// Cancelled orders stay in the totals with whatever price they carry; the
// status counts make the split visible.
func buildReport(shift *domain.Shift, orders []*ordersdomain.Order, paymentNames map[int64]string, now time.Time) (*types.ShiftReport, error) {
	span, err := shift.Duration(now)
	if err != nil {
		return nil, err
	}

	report := &types.ShiftReport{
		ShiftID:           shift.ID,
		Date:              shift.Date,
		Label:             shift.Label,
		StartTime:         shift.StartTime,
		EndTime:           shift.EndTime,
		Open:              !shift.Ended(),
		DurationHours:     math.Round(span.Hours()*100) / 100,
		TotalSales:        decimal.Zero,
		TotalDeliveryFees: decimal.Zero,
		ProductsValue:     decimal.Zero,
		AverageOrderValue: decimal.Zero,
		PaymentBreakdown:  []types.PaymentBreakdownEntry{},
	}

	type group struct {
		orders int
		total  decimal.Decimal
	}
	groups := map[int64]*group{}

	for _, order := range orders {
		report.TotalOrders++
		switch order.Status {
		case ordersdomain.StatusDelivered:
			report.DeliveredOrders++
		case ordersdomain.StatusCancelled:
			report.CancelledOrders++
		}
		report.TotalSales = report.TotalSales.Add(order.TotalPrice)
		report.TotalDeliveryFees = report.TotalDeliveryFees.Add(order.DeliveryFee)

		g := groups[order.PaymentID]
		if g == nil {
			g = &group{total: decimal.Zero}
			groups[order.PaymentID] = g
		}
		g.orders++
		g.total = g.total.Add(order.TotalPrice)
	}

	report.TotalSales = report.TotalSales.Round(2)
	report.TotalDeliveryFees = report.TotalDeliveryFees.Round(2)
	report.ProductsValue = report.TotalSales.Sub(report.TotalDeliveryFees).Round(2)
	if report.TotalOrders > 0 {
		report.AverageOrderValue = report.TotalSales.
			Div(decimal.NewFromInt(int64(report.TotalOrders))).
			Round(2)
	}

	paymentIDs := make([]int64, 0, len(groups))
	for id := range groups {
		paymentIDs = append(paymentIDs, id)
	}
	sort.Slice(paymentIDs, func(i, j int) bool { return paymentIDs[i] < paymentIDs[j] })

	for _, id := range paymentIDs {
		g := groups[id]
		entry := types.PaymentBreakdownEntry{
			PaymentID:  id,
			Name:       paymentNames[id],
			Orders:     g.orders,
			Total:      g.total.Round(2),
			Percentage: decimal.Zero,
		}
		if report.TotalSales.IsPositive() {
			entry.Percentage = g.total.Div(report.TotalSales).Mul(hundred).Round(2)
		}
		report.PaymentBreakdown = append(report.PaymentBreakdown, entry)
	}
	return report, nil
}
