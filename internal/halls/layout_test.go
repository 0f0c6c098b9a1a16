package halls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSeats_FullGrid(t *testing.T) {
	hall := &Hall{TotalRows: 3, SeatsPerRow: 4}

	seats := GenerateSeats(hall, nil)

	assert.Len(t, seats, 12)
	assert.Equal(t, 1, seats[0].Row)
	assert.Equal(t, 1, seats[0].Number)
	assert.Equal(t, 3, seats[11].Row)
	assert.Equal(t, 4, seats[11].Number)

	// every (row, number) pair appears exactly once
	seen := make(map[[2]int]bool)
	for _, s := range seats {
		key := [2]int{s.Row, s.Number}
		assert.False(t, seen[key], "duplicate seat %v", key)
		seen[key] = true
	}
}

func TestGenerateSeats_WheelchairRows(t *testing.T) {
	hall := &Hall{TotalRows: 2, SeatsPerRow: 2}

	seats := GenerateSeats(hall, []int{2})

	for _, s := range seats {
		if s.Row == 2 {
			assert.True(t, s.IsWheelchair)
		} else {
			assert.False(t, s.IsWheelchair)
		}
	}
}

func TestFitsLayout(t *testing.T) {
	hall := &Hall{TotalRows: 5, SeatsPerRow: 10}

	assert.True(t, FitsLayout(hall, 1, 1))
	assert.True(t, FitsLayout(hall, 5, 10))
	assert.False(t, FitsLayout(hall, 0, 1))
	assert.False(t, FitsLayout(hall, 6, 1))
	assert.False(t, FitsLayout(hall, 1, 11))
	assert.False(t, FitsLayout(hall, 99, 1))
}
