package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	shiftstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	"github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
	shiftworkflows "github.com/shamskitchen/go-gin-delivery-server/internal/platform/temporal/workflows/shifts"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalShiftWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineShiftWorkflows)(nil)
)

// TemporalShiftWorkflows starts the shift-closing workflow on a Temporal
// cluster.
type TemporalShiftWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalShiftWorkflows wires a Temporal client into the orchestrator.
func NewTemporalShiftWorkflows(c client.Client) *TemporalShiftWorkflows {
	return &TemporalShiftWorkflows{client: c, taskQueue: shiftworkflows.ShiftClosingTaskQueue}
}

// CloseShift runs the durable close-then-report flow and waits for the
// report. One workflow per shift: a concurrent close of the same shift joins
// the already-running execution.
func (o *TemporalShiftWorkflows) CloseShift(ctx context.Context, input shiftstypes.EndShiftInput) (*shiftstypes.ShiftReport, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal shift workflows not configured")
	}
	workflowID := fmt.Sprintf("shift-closing-%d", input.ShiftID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		shiftworkflows.ShiftClosingWorkflow,
		shiftworkflows.ShiftClosingWorkflowInput{Command: input, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var report shiftstypes.ShiftReport
			if err := existingRun.Get(ctx, &report); err != nil {
				return nil, err
			}
			return &report, nil
		}
		return nil, err
	}
	var report shiftstypes.ShiftReport
	if err := run.Get(ctx, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// InlineShiftWorkflows executes the service directly without Temporal, useful
// for tests or dev fallbacks.
type InlineShiftWorkflows struct {
	service ports.Service
}

// NewInlineShiftWorkflows wraps the shift service for synchronous execution.
func NewInlineShiftWorkflows(service ports.Service) *InlineShiftWorkflows {
	return &InlineShiftWorkflows{service: service}
}

// CloseShift ends the shift and builds the report in-process.
func (o *InlineShiftWorkflows) CloseShift(ctx context.Context, input shiftstypes.EndShiftInput) (*shiftstypes.ShiftReport, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline shift workflows not configured")
	}
	if _, err := o.service.EndShift(ctx, input); err != nil {
		return nil, err
	}
	return o.service.Report(ctx, input.ShiftID)
}

func workflowTraceComponent(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return fallbackTrace()
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return fallbackTrace()
	}
	return spanCtx.TraceID().String()
}

func fallbackTrace() string {
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
