//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/shamskitchen/go-gin-delivery-server/test/pact"

	deliveryserver "github.com/shamskitchen/go-gin-delivery-server/go"
	ordersmemory "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/observability"
	ordersapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application"
	orderstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application/types"
	ordersports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
	shiftsmemory "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/memory"
	shiftsobs "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/observability"
	shiftsworkflows "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/workflows"
	shiftsapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application"
	shiftstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	openapitypes "github.com/oapi-codegen/runtime/types"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDeliveryProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateReferenceSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.ensureShift(t)
			}
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.ensureShift(t)
				app.ensureOrder(t)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateShiftOpen: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.ensureShift(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	directory    *ordersmemory.Directory
	orderService ordersports.Service
	shiftService *shiftsapp.Service
	server       *httptest.Server

	shiftSeeded bool
	orderSeeded bool
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	directory := ordersmemory.NewDirectory()
	directory.PutUser(uuid.MustParse(pacttest.CustomerID))
	directory.PutAddress(uuid.MustParse(pacttest.CustomerID), pacttest.AddressID, decimal.RequireFromString("20.00"))
	directory.PutVariant(ordersports.VariantQuote{
		VariantID: pacttest.VariantID,
		UnitPrice: decimal.RequireFromString("55.00"),
		Available: true,
	}, pacttest.VariantProduct, pacttest.VariantSize, pacttest.VariantType)
	directory.PutShift(pacttest.OpenShiftID)

	orderRepo := ordersmemory.NewRepository(directory)
	orderService := ordersobs.New(ordersapp.NewService(orderRepo, ordersapp.Collaborators{
		Users:   directory,
		Zones:   directory,
		Catalog: directory,
		Shifts:  directory,
	}))

	payments := shiftsmemory.NewPaymentDirectory()
	payments.Put(pacttest.PaymentID, "Cash")
	shiftService := shiftsapp.NewService(shiftsmemory.NewRepository(), shiftsapp.Collaborators{
		Orders:   orderRepo,
		Payments: payments,
	})
	decoratedShifts := shiftsobs.New(shiftService)
	workflows := shiftsworkflows.NewInlineShiftWorkflows(decoratedShifts)

	handlers := deliveryserver.ApiHandleFunctions{
		OrdersAPI: deliveryserver.NewOrdersAPI(orderService),
		ShiftsAPI: deliveryserver.NewShiftsAPI(decoratedShifts, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = deliveryserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		directory:    directory,
		orderService: orderService,
		shiftService: shiftService,
		server:       server,
	}
}

// ensureShift opens the well-known shift exactly once; the in-memory
// repository assigns it id 1.
func (a *contractProviderApp) ensureShift(t testing.TB) {
	t.Helper()
	if a.shiftSeeded {
		return
	}
	shift, err := a.shiftService.StartShift(context.Background(), shiftstypes.StartShiftInput{
		Date:      openapitypes.Date{Time: time.Now().UTC()},
		Label:     "day",
		StartTime: "09:00:00",
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.OpenShiftID, shift.ID)
	a.shiftSeeded = true
}

// ensureOrder places the well-known order exactly once; the in-memory
// repository assigns it id 1.
func (a *contractProviderApp) ensureOrder(t testing.TB) {
	t.Helper()
	if a.orderSeeded {
		return
	}
	// The placement interaction may have created the order already.
	if existing, err := a.orderService.GetOrder(context.Background(), pacttest.ExistingOrderID); err == nil && existing != nil {
		a.orderSeeded = true
		return
	}
	projection, err := a.orderService.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		UserID:    uuid.MustParse(pacttest.CustomerID),
		AddressID: pacttest.AddressID,
		PaymentID: pacttest.PaymentID,
		ShiftID:   pacttest.OpenShiftID,
		Items: []orderstypes.CreateOrderItemInput{
			{VariantID: pacttest.VariantID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingOrderID, projection.Order.ID)
	a.orderSeeded = true
}
