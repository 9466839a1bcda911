package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	deliveryserver "github.com/shamskitchen/go-gin-delivery-server/go"

	ordersmemory "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application"
	ordersports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"

	shiftsmemory "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/memory"
	shiftsobs "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/observability"
	shiftspostgres "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/persistence/postgres"
	shiftsworkflows "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/workflows"
	shiftsapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application"
	shiftsports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"

	"github.com/shamskitchen/go-gin-delivery-server/internal/platform/migrations"
	platformobservability "github.com/shamskitchen/go-gin-delivery-server/internal/platform/observability"
	platformpostgres "github.com/shamskitchen/go-gin-delivery-server/internal/platform/postgres"
)

// Run boots the delivery HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "delivery-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("repositories configured with postgres")
	}

	orderRepo, orderDeps := buildOrderDependencies(db)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, orderDeps),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	shiftRepo, paymentDirectory := buildShiftDependencies(db)
	shiftService := shiftsobs.New(
		shiftsapp.NewService(shiftRepo, shiftsapp.Collaborators{
			Orders:   orderRepo,
			Payments: paymentDirectory,
		}),
		shiftsobs.WithLogger(logger),
		shiftsobs.WithTracer(instruments.Tracer("internal.shifts.application")),
		shiftsobs.WithMeter(instruments.Meter("internal.shifts.application")),
	)

	var shiftWorkflows shiftsports.WorkflowOrchestrator = shiftsworkflows.NewInlineShiftWorkflows(shiftService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, closing shifts inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		shiftWorkflows = shiftsworkflows.NewTemporalShiftWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := deliveryserver.ApiHandleFunctions{
		OrdersAPI: deliveryserver.NewOrdersAPI(orderService),
		ShiftsAPI: deliveryserver.NewShiftsAPI(shiftService, shiftWorkflows),
	}

	router := deliveryserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("delivery API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("delivery API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildOrderDependencies picks postgres-backed storage and reference-data
// lookups when a database is available, in-memory stand-ins otherwise.
func buildOrderDependencies(db *gorm.DB) (ordersports.Repository, ordersapp.Collaborators) {
	if db == nil {
		directory := ordersmemory.NewDirectory()
		return ordersmemory.NewRepository(directory), ordersapp.Collaborators{
			Users:   directory,
			Zones:   directory,
			Catalog: directory,
			Shifts:  directory,
		}
	}
	lookups := orderspostgres.NewLookups(db)
	return orderspostgres.NewRepository(db), ordersapp.Collaborators{
		Users:   lookups,
		Zones:   lookups,
		Catalog: lookups,
		Shifts:  lookups,
	}
}

func buildShiftDependencies(db *gorm.DB) (shiftsports.Repository, shiftsports.PaymentDirectory) {
	if db == nil {
		return shiftsmemory.NewRepository(), shiftsmemory.NewPaymentDirectory()
	}
	return shiftspostgres.NewRepository(db), shiftspostgres.NewPaymentDirectory(db)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
