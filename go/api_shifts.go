package deliveryserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	openapitypes "github.com/oapi-codegen/runtime/types"

	shifthttpmapper "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/adapters/http/mapper"
	shiftstypes "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application/types"
	shiftsports "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/ports"
	apierrors "github.com/shamskitchen/go-gin-delivery-server/internal/shared/errors"
)

// ShiftsAPI wires HTTP transport with the shifts bounded context service and
// the durable closing workflow.
type ShiftsAPI struct {
	service   shiftsports.Service
	workflows shiftsports.WorkflowOrchestrator
}

// NewShiftsAPI creates a ShiftsAPI backed by the provided service.
func NewShiftsAPI(service shiftsports.Service, workflows shiftsports.WorkflowOrchestrator) ShiftsAPI {
	return ShiftsAPI{service: service, workflows: workflows}
}

// Post /v1/shifts
// Start a shift
func (api *ShiftsAPI) StartShift(c *gin.Context) {
	var payload shifthttpmapper.StartShift
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	shift, err := api.service.StartShift(c.Request.Context(), shifthttpmapper.ToStartInput(payload))
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shifthttpmapper.FromDomainShift(shift))
}

// Get /v1/shifts/:shiftId
// Load one shift
func (api *ShiftsAPI) GetShift(c *gin.Context) {
	id, ok := parseIDParam(c, "shiftId")
	if !ok {
		return
	}
	shift, err := api.service.GetShift(c.Request.Context(), id)
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifthttpmapper.FromDomainShift(shift))
}

// Get /v1/shifts
// List shifts; ?date=YYYY-MM-DD narrows to one calendar date.
func (api *ShiftsAPI) ListShifts(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondProblem(c, apierrors.ErrBadRequest.WithDetail("date must be YYYY-MM-DD"))
			return
		}
		shifts, err := api.service.ListShiftsByDate(ctx, openapitypes.Date{Time: day})
		if err != nil {
			respondShiftServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, shifthttpmapper.FromDomainShiftList(shifts))
		return
	}

	skip, limit, ok := parsePageQuery(c)
	if !ok {
		return
	}
	shifts, err := api.service.ListShifts(ctx, shiftstypes.PageInput{Skip: skip, Limit: limit})
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifthttpmapper.FromDomainShiftList(shifts))
}

// Post /v1/shifts/:shiftId/end
// End a shift without building its report
func (api *ShiftsAPI) EndShift(c *gin.Context) {
	id, ok := parseIDParam(c, "shiftId")
	if !ok {
		return
	}
	payload, ok := bindEndShift(c)
	if !ok {
		return
	}
	shift, err := api.service.EndShift(c.Request.Context(), shiftstypes.EndShiftInput{ShiftID: id, EndTime: payload.EndTime})
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifthttpmapper.FromDomainShift(shift))
}

// Post /v1/shifts/:shiftId/close
// End a shift and build its report in one durable flow
func (api *ShiftsAPI) CloseShift(c *gin.Context) {
	id, ok := parseIDParam(c, "shiftId")
	if !ok {
		return
	}
	payload, ok := bindEndShift(c)
	if !ok {
		return
	}
	input := shiftstypes.EndShiftInput{ShiftID: id, EndTime: payload.EndTime}
	report, err := api.closeShift(c, input)
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifthttpmapper.FromReport(report))
}

func (api *ShiftsAPI) closeShift(c *gin.Context, input shiftstypes.EndShiftInput) (*shiftstypes.ShiftReport, error) {
	if api.workflows != nil {
		return api.workflows.CloseShift(c.Request.Context(), input)
	}
	if _, err := api.service.EndShift(c.Request.Context(), input); err != nil {
		return nil, err
	}
	return api.service.Report(c.Request.Context(), input.ShiftID)
}

// Post /v1/shifts/:shiftId/toggle-active
// Flip the shift's active flag
func (api *ShiftsAPI) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "shiftId")
	if !ok {
		return
	}
	shift, err := api.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifthttpmapper.FromDomainShift(shift))
}

// Get /v1/shifts/:shiftId/report
// Aggregate the shift's orders into its summary
func (api *ShiftsAPI) Report(c *gin.Context) {
	id, ok := parseIDParam(c, "shiftId")
	if !ok {
		return
	}
	report, err := api.service.Report(c.Request.Context(), id)
	if err != nil {
		respondShiftServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifthttpmapper.FromReport(report))
}

// bindEndShift tolerates an empty body; the end time then defaults to now.
func bindEndShift(c *gin.Context) (shifthttpmapper.EndShift, bool) {
	var payload shifthttpmapper.EndShift
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return payload, false
		}
	}
	return payload, true
}
