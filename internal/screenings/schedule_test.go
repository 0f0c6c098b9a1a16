package screenings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func window(startMin, endMin int) (time.Time, time.Time) {
	base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(startMin) * time.Minute),
		base.Add(time.Duration(endMin) * time.Minute)
}

func TestValidateWindow(t *testing.T) {
	start, end := window(0, 120)
	assert.NoError(t, ValidateWindow(start, end))

	assert.ErrorIs(t, ValidateWindow(end, start), ErrWindowInverted)
	assert.ErrorIs(t, ValidateWindow(start, start), ErrWindowInverted)
}

func TestOverlaps(t *testing.T) {
	aStart, aEnd := window(0, 120)

	tests := []struct {
		name     string
		bStart   int
		bEnd     int
		overlaps bool
	}{
		{"identical", 0, 120, true},
		{"nested", 30, 60, true},
		{"straddles start", -30, 30, true},
		{"straddles end", 90, 150, true},
		{"before", -120, -30, false},
		{"after", 150, 240, false},
		{"back to back before", -120, 0, false},
		{"back to back after", 120, 240, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bStart, bEnd := window(tt.bStart, tt.bEnd)
			assert.Equal(t, tt.overlaps, Overlaps(aStart, aEnd, bStart, bEnd))
		})
	}
}

func TestCheckHallConflicts(t *testing.T) {
	s1Start, s1End := window(0, 120)
	existing := []Screening{{StartTime: s1Start, EndTime: s1End}}

	shiftStart, shiftEnd := window(30, 150)
	assert.ErrorIs(t, CheckHallConflicts(shiftStart, shiftEnd, existing), ErrHallOverlap)

	laterStart, laterEnd := window(120, 240)
	assert.NoError(t, CheckHallConflicts(laterStart, laterEnd, existing))

	assert.NoError(t, CheckHallConflicts(shiftStart, shiftEnd, nil))
}
