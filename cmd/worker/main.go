package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	ordersmemory "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/ports"
	shiftsmemory "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/memory"
	shiftsobs "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/observability"
	shiftspostgres "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/persistence/postgres"
	shiftsapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application"
	shiftsports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
	platformobservability "github.com/shamskitchen/go-gin-delivery-server/internal/platform/observability"
	platformpostgres "github.com/shamskitchen/go-gin-delivery-server/internal/platform/postgres"
	shiftactivities "github.com/shamskitchen/go-gin-delivery-server/internal/platform/temporal/activities/shifts"
	shiftworkflows "github.com/shamskitchen/go-gin-delivery-server/internal/platform/temporal/workflows/shifts"
)

func main() {
	ctx := context.Background()
	const serviceName = "delivery-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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
	shiftService := shiftsobs.New(
		buildShiftService(db),
		shiftsobs.WithLogger(logger),
		shiftsobs.WithTracer(instruments.Tracer("internal.shifts.application")),
		shiftsobs.WithMeter(instruments.Meter("internal.shifts.application")),
	)
	activities := shiftactivities.NewActivities(shiftService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, shiftworkflows.ShiftClosingTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(shiftworkflows.ShiftClosingWorkflow, workflow.RegisterOptions{Name: shiftworkflows.ShiftClosingWorkflowName})
	w.RegisterActivityWithOptions(activities.EndShift, activity.RegisterOptions{Name: shiftactivities.EndShiftActivityName})
	w.RegisterActivityWithOptions(activities.BuildReport, activity.RegisterOptions{Name: shiftactivities.BuildReportActivityName})

	logger.Info("worker listening", slog.String("taskQueue", shiftworkflows.ShiftClosingTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildShiftService wires the shift use cases against postgres when a
// database is available and against in-memory stand-ins otherwise.
func buildShiftService(db *gorm.DB) shiftsports.Service {
	if db == nil {
		directory := ordersmemory.NewDirectory()
		var orders ordersports.Repository = ordersmemory.NewRepository(directory)
		return shiftsapp.NewService(shiftsmemory.NewRepository(), shiftsapp.Collaborators{
			Orders:   orders,
			Payments: shiftsmemory.NewPaymentDirectory(),
		})
	}
	return shiftsapp.NewService(shiftspostgres.NewRepository(db), shiftsapp.Collaborators{
		Orders:   orderspostgres.NewRepository(db),
		Payments: shiftspostgres.NewPaymentDirectory(db),
	})
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
