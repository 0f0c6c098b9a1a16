package halls

// Pure layout helpers. Validation is performed deliberately at the call
// sites that need it rather than hooked into persistence.

// GenerateSeats builds the full seat grid for a hall. Rows and numbers are
// 1-based, matching how they are printed on tickets.
func GenerateSeats(hall *Hall, wheelchairRows []int) []Seat {
	wheelchair := make(map[int]bool, len(wheelchairRows))
	for _, row := range wheelchairRows {
		wheelchair[row] = true
	}

	seats := make([]Seat, 0, hall.TotalRows*hall.SeatsPerRow)
	for row := 1; row <= hall.TotalRows; row++ {
		for number := 1; number <= hall.SeatsPerRow; number++ {
			seats = append(seats, Seat{
				HallID:       hall.ID,
				Row:          row,
				Number:       number,
				IsWheelchair: wheelchair[row],
			})
		}
	}
	return seats
}

// FitsLayout reports whether a (row, number) position exists in the hall's
// grid.
func FitsLayout(hall *Hall, row, number int) bool {
	return row >= 1 && row <= hall.TotalRows &&
		number >= 1 && number <= hall.SeatsPerRow
}
