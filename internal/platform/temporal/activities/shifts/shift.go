package shifts

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	shiftsapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application"
	shiftstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	shiftsports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
)

const (
	// EndShiftActivityName closes a shift, treating an already-closed shift
	// as success so the workflow can be retried safely.
	EndShiftActivityName = "shifts.activities.EndShift"
	// BuildReportActivityName aggregates the closed shift's orders into the
	// report structure.
	BuildReportActivityName = "shifts.activities.BuildReport"
)

// Activities groups activities that operate on the shifts bounded context.
type Activities struct {
	service shiftsports.Service
}

// NewActivities wires the shift service into the Temporal activities bundle.
func NewActivities(service shiftsports.Service) *Activities {
	return &Activities{service: service}
}

// EndShift closes the shift. ErrShiftEnded is swallowed so a retried workflow
// run does not fail after a prior attempt already closed it.
func (a *Activities) EndShift(ctx context.Context, input shiftstypes.EndShiftInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("end shift activity not initialized", "shiftId", input.ShiftID)
		return errors.New("end shift activity not initialized")
	}
	logger.Info("EndShift activity started", "shiftId", input.ShiftID)
	_, err := a.service.EndShift(ctx, input)
	if err != nil {
		if errors.Is(err, shiftsapp.ErrShiftEnded) {
			logger.Info("shift already ended; continuing", "shiftId", input.ShiftID)
			return nil
		}
		logger.Error("EndShift activity failed", "shiftId", input.ShiftID, "error", err)
		return err
	}
	logger.Info("EndShift activity completed", "shiftId", input.ShiftID)
	return nil
}

// BuildReport aggregates the shift's orders into its report.
func (a *Activities) BuildReport(ctx context.Context, shiftID int64) (*shiftstypes.ShiftReport, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("build report activity not initialized", "shiftId", shiftID)
		return nil, errors.New("build report activity not initialized")
	}
	logger.Info("BuildReport activity started", "shiftId", shiftID)
	report, err := a.service.Report(ctx, shiftID)
	if err != nil {
		logger.Error("BuildReport activity failed", "shiftId", shiftID, "error", err)
		return nil, err
	}
	logger.Info("BuildReport activity completed", "shiftId", shiftID, "orders", report.TotalOrders)
	return report, nil
}
