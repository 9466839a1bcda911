package domain

import (
	"errors"
	"strings"
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
)

// TimeOfDayLayout is the wall-clock format for shift start and end times.
const TimeOfDayLayout = "15:04:05"

var (
	ErrInvalidLabel     = errors.New("shift label is required")
	ErrInvalidTimeOfDay = errors.New("time must be HH:MM:SS")
	ErrAlreadyEnded     = errors.New("shift already ended")
	ErrNotEnded         = errors.New("shift not ended")
)

// Shift is one bounded cashier working period. It scopes order numbering and
// reporting. Start and end are wall-clock times on the shift date; a shift
// that runs past midnight has an end time earlier than its start.
type Shift struct {
	ID        int64
	Date      openapitypes.Date
	Label     string
	StartTime string
	EndTime   *string
	IsActive  bool
}

// NewShift opens a shift for a date and label at the given wall-clock time.
func NewShift(date openapitypes.Date, label, startTime string) (*Shift, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrInvalidLabel
	}
	if err := validateTimeOfDay(startTime); err != nil {
		return nil, err
	}
	return &Shift{
		Date:      date,
		Label:     label,
		StartTime: startTime,
		IsActive:  true,
	}, nil
}

// End closes the shift. Ending an already-ended shift fails with
// ErrAlreadyEnded; callers that want idempotent closing handle that
// themselves.
func (s *Shift) End(endTime string) error {
	if s.Ended() {
		return ErrAlreadyEnded
	}
	if err := validateTimeOfDay(endTime); err != nil {
		return err
	}
	s.EndTime = &endTime
	s.IsActive = false
	return nil
}

// ToggleActive flips the active flag. Ended shifts stay inactive.
func (s *Shift) ToggleActive() error {
	if s.Ended() {
		return ErrAlreadyEnded
	}
	s.IsActive = !s.IsActive
	return nil
}

// Ended reports whether the shift has an end time.
func (s *Shift) Ended() bool {
	return s.EndTime != nil && *s.EndTime != ""
}

// Duration returns the worked span. For a still-open shift the caller
// supplies a provisional end via now. An end earlier than the start means the
// shift crossed midnight, so a day is added before differencing.
func (s *Shift) Duration(now time.Time) (time.Duration, error) {
	start, err := time.Parse(TimeOfDayLayout, s.StartTime)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	var end time.Time
	if s.Ended() {
		end, err = time.Parse(TimeOfDayLayout, *s.EndTime)
		if err != nil {
			return 0, ErrInvalidTimeOfDay
		}
	} else {
		end, err = time.Parse(TimeOfDayLayout, now.Format(TimeOfDayLayout))
		if err != nil {
			return 0, ErrInvalidTimeOfDay
		}
	}
	span := end.Sub(start)
	if span < 0 {
		span += 24 * time.Hour
	}
	return span, nil
}

func validateTimeOfDay(value string) error {
	if _, err := time.Parse(TimeOfDayLayout, value); err != nil {
		return ErrInvalidTimeOfDay
	}
	return nil
}
