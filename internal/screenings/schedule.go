package screenings

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Pure scheduling rules, invoked deliberately at the two call sites that
// need them (creation and rescheduling) rather than as persistence hooks.

var (
	ErrWindowInverted = errors.New("end time must be after start time")
	ErrHallOverlap    = errors.New("hall already has a screening in this time window")
)

// ValidateWindow checks the basic shape of a screening window.
func ValidateWindow(start, end time.Time) error {
	if !end.After(start) {
		return ErrWindowInverted
	}
	return nil
}

// Overlaps reports whether two half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back screenings sharing an instant do
// not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckHallConflicts returns ErrHallOverlap if the candidate window
// intersects any of the given screenings (the caller excludes the screening
// being rescheduled, if any).
func CheckHallConflicts(start, end time.Time, existing []Screening) error {
	for _, s := range existing {
		if Overlaps(start, end, s.StartTime, s.EndTime) {
			return ErrHallOverlap
		}
	}
	return nil
}

// RegisterValidators installs struct-level binding validation so malformed
// windows are rejected before the service layer runs.
func RegisterValidators(v *validator.Validate) {
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(CreateScreeningRequest)
		if !req.EndTime.After(req.StartTime) {
			sl.ReportError(req.EndTime, "end_time", "EndTime", "gtstart", "")
		}
	}, CreateScreeningRequest{})
}
