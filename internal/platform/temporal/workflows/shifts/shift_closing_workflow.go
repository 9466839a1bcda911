package shifts

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	shiftstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	shiftactivities "github.com/shamskitchen/go-gin-delivery-server/internal/platform/temporal/activities/shifts"
)

const (
	// ShiftClosingWorkflowName is the public identifier for registering the workflow.
	ShiftClosingWorkflowName = "shifts.workflows.Closing"
	// ShiftClosingTaskQueue is the queue consumed by the worker processing shift workflows.
	ShiftClosingTaskQueue = "SHIFT_CLOSING"
)

// ShiftClosingWorkflowInput captures the payload to close a shift and build
// its report.
type ShiftClosingWorkflowInput struct {
	Command shiftstypes.EndShiftInput
	TraceID string
}

// ShiftClosingWorkflow closes the shift and then aggregates its report. The
// end-shift activity is idempotent, so workflow retries are safe.
func ShiftClosingWorkflow(ctx workflow.Context, input ShiftClosingWorkflowInput) (*shiftstypes.ShiftReport, error) {
	logger := workflow.GetLogger(ctx)
	shiftID := input.Command.ShiftID
	logger.Info("ShiftClosingWorkflow started", withTraceID(input.TraceID, "shiftId", shiftID)...)

	endOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	reportOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	if err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, endOptions),
		shiftactivities.EndShiftActivityName,
		input.Command,
	).Get(ctx, nil); err != nil {
		logger.Error("ShiftClosingWorkflow failed to end shift", withTraceID(input.TraceID, "shiftId", shiftID, "error", err)...)
		return nil, err
	}

	var report shiftstypes.ShiftReport
	if err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, reportOptions),
		shiftactivities.BuildReportActivityName,
		shiftID,
	).Get(ctx, &report); err != nil {
		logger.Error("ShiftClosingWorkflow failed to build report", withTraceID(input.TraceID, "shiftId", shiftID, "error", err)...)
		return nil, err
	}

	logger.Info("ShiftClosingWorkflow completed", withTraceID(input.TraceID, "shiftId", shiftID, "orders", report.TotalOrders)...)
	return &report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
