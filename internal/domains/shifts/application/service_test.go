package application

import (
	"context"
	"testing"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/domain"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/memory"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/domain"
)

type stubOrderSource struct {
	orders []*ordersdomain.Order
}

func (s *stubOrderSource) ListByShift(context.Context, int64) ([]*ordersdomain.Order, error) {
	return s.orders, nil
}

func dateOf(year int, month time.Month, day int) openapitypes.Date {
	return openapitypes.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newShiftFixture(orders []*ordersdomain.Order) (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	payments := memory.NewPaymentDirectory()
	payments.Put(1, "Cash")
	payments.Put(2, "Card")
	service := NewService(repo, Collaborators{
		Orders:   &stubOrderSource{orders: orders},
		Payments: payments,
	}).WithClock(func() time.Time {
		return time.Date(2024, 3, 18, 22, 0, 0, 0, time.UTC)
	})
	return service, repo
}

func TestStartShift(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)
	assert.True(t, shift.IsActive)
	assert.False(t, shift.Ended())

	t.Run("second open shift for same date and label is rejected", func(t *testing.T) {
		_, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "17:00:00"})
		assert.ErrorIs(t, err, ErrShiftConflict)
	})

	t.Run("other label on the same date is fine", func(t *testing.T) {
		_, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_2", StartTime: "17:00:00"})
		assert.NoError(t, err)
	})

	t.Run("empty start time defaults to now", func(t *testing.T) {
		shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 19), Label: "Shift_1"})
		require.NoError(t, err)
		assert.Equal(t, "22:00:00", shift.StartTime)
	})

	t.Run("blank label is invalid", func(t *testing.T) {
		_, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 20), Label: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestEndShift(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)

	ended, err := service.EndShift(ctx, types.EndShiftInput{ShiftID: shift.ID, EndTime: "23:30:00"})
	require.NoError(t, err)
	assert.True(t, ended.Ended())
	assert.False(t, ended.IsActive)

	_, err = service.EndShift(ctx, types.EndShiftInput{ShiftID: shift.ID, EndTime: "23:45:00"})
	assert.ErrorIs(t, err, ErrShiftEnded)

	_, err = service.EndShift(ctx, types.EndShiftInput{ShiftID: 404})
	assert.ErrorIs(t, err, ErrShiftNotFound)

	t.Run("reopening the label after close is allowed", func(t *testing.T) {
		_, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 19), Label: "Shift_1", StartTime: "16:00:00"})
		assert.NoError(t, err)
	})
}

func TestToggleActive(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)

	toggled, err := service.ToggleActive(ctx, shift.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = service.ToggleActive(ctx, shift.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestToggleActiveEndedShift(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)
	_, err = service.EndShift(ctx, types.EndShiftInput{ShiftID: shift.ID, EndTime: "23:30:00"})
	require.NoError(t, err)

	_, err = service.ToggleActive(ctx, shift.ID)
	assert.ErrorIs(t, err, ErrShiftEnded)

	stored, err := service.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestListShiftsByDate(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	for _, label := range []string{"Shift_1", "Shift_2"} {
		_, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: label, StartTime: "16:00:00"})
		require.NoError(t, err)
	}
	_, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 19), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)

	shifts, err := service.ListShiftsByDate(ctx, dateOf(2024, 3, 18))
	require.NoError(t, err)
	assert.Len(t, shifts, 2)

	all, err := service.ListShifts(ctx, types.PageInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReportAggregation(t *testing.T) {
	orders := []*ordersdomain.Order{
		{PaymentID: 1, Status: ordersdomain.StatusDelivered, TotalPrice: money("100.00"), DeliveryFee: money("10.00")},
		{PaymentID: 2, Status: ordersdomain.StatusDelivered, TotalPrice: money("50.00"), DeliveryFee: money("10.00")},
		{PaymentID: 1, Status: ordersdomain.StatusCancelled, TotalPrice: money("0.00"), DeliveryFee: money("0.00")},
	}
	service, _ := newShiftFixture(orders)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)
	_, err = service.EndShift(ctx, types.EndShiftInput{ShiftID: shift.ID, EndTime: "23:30:00"})
	require.NoError(t, err)

	report, err := service.Report(ctx, shift.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, 2, report.DeliveredOrders)
	assert.Equal(t, 1, report.CancelledOrders)
	assert.InDelta(t, 7.5, report.DurationHours, 0.001)
	assert.False(t, report.Open)

	assert.True(t, report.TotalSales.Equal(money("150.00")), "sales %s", report.TotalSales)
	assert.True(t, report.TotalDeliveryFees.Equal(money("20.00")), "fees %s", report.TotalDeliveryFees)
	assert.True(t, report.ProductsValue.Equal(money("130.00")), "products %s", report.ProductsValue)
	assert.True(t, report.AverageOrderValue.Equal(money("50.00")), "avg %s", report.AverageOrderValue)

	require.Len(t, report.PaymentBreakdown, 2)
	cash := report.PaymentBreakdown[0]
	assert.Equal(t, "Cash", cash.Name)
	assert.Equal(t, 2, cash.Orders)
	assert.True(t, cash.Total.Equal(money("100.00")))
	assert.True(t, cash.Percentage.Equal(money("66.67")), "cash share %s", cash.Percentage)

	card := report.PaymentBreakdown[1]
	assert.Equal(t, "Card", card.Name)
	assert.Equal(t, 1, card.Orders)
	assert.True(t, card.Total.Equal(money("50.00")))
	assert.True(t, card.Percentage.Equal(money("33.33")), "card share %s", card.Percentage)
}

func TestReportEmptyShift(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "16:00:00"})
	require.NoError(t, err)

	report, err := service.Report(ctx, shift.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalOrders)
	assert.True(t, report.AverageOrderValue.IsZero())
	assert.True(t, report.TotalSales.IsZero())
	assert.Empty(t, report.PaymentBreakdown)
	assert.True(t, report.Open)
	// Open shift: provisional duration runs to the injected clock.
	assert.InDelta(t, 6.0, report.DurationHours, 0.001)
}

func TestReportCrossesMidnight(t *testing.T) {
	service, _ := newShiftFixture(nil)
	ctx := context.Background()

	shift, err := service.StartShift(ctx, types.StartShiftInput{Date: dateOf(2024, 3, 18), Label: "Shift_1", StartTime: "18:00:00"})
	require.NoError(t, err)
	_, err = service.EndShift(ctx, types.EndShiftInput{ShiftID: shift.ID, EndTime: "02:00:00"})
	require.NoError(t, err)

	report, err := service.Report(ctx, shift.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, report.DurationHours, 0.001)
}

func TestReportUnknownShift(t *testing.T) {
	service, _ := newShiftFixture(nil)
	_, err := service.Report(context.Background(), 404)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestMapErrorHidesStorageDetails(t *testing.T) {
	err := mapError(assert.AnError)
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotContains(t, err.Error(), domain.ErrInvalidLabel.Error())
}
