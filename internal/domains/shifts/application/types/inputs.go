package types

import (
	openapitypes "github.com/oapi-codegen/runtime/types"
)

// StartShiftInput opens a new shift.
type StartShiftInput struct {
	Date      openapitypes.Date
	Label     string
	StartTime string
}

// EndShiftInput closes a shift. EndTime is optional; when empty the current
// wall-clock time is used.
type EndShiftInput struct {
	ShiftID int64
	EndTime string
}

// PageInput bounds list queries.
type PageInput struct {
	Skip  int
	Limit int
}
