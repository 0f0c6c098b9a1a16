package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ConflictKind classifies why a seat set was rejected.
type ConflictKind string

const (
	// KindInvalidSeat: a seat is not part of the screening's hall. Client
	// error; retrying without fixing the input cannot help.
	KindInvalidSeat ConflictKind = "INVALID_SEAT"
	// KindSeatHeld: a seat is actively held by a different client.
	// Transient; retryable after the hold lapses.
	KindSeatHeld ConflictKind = "SEAT_HELD"
	// KindSeatReserved: a seat already belongs to a committed reservation.
	// Permanent for this screening.
	KindSeatReserved ConflictKind = "SEAT_RESERVED"
)

// ConflictError rejects a whole batch, naming every offending seat so the
// client can re-render exactly which selections to drop.
type ConflictError struct {
	Kind    ConflictKind
	SeatIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: [%s]", strings.ToLower(string(e.Kind)), strings.Join(ids, ", "))
}

// NewConflictError builds a ConflictError with the seat list sorted for
// deterministic output.
func NewConflictError(kind ConflictKind, seatIDs []uuid.UUID) *ConflictError {
	sorted := make([]uuid.UUID, len(seatIDs))
	copy(sorted, seatIDs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return &ConflictError{Kind: kind, SeatIDs: sorted}
}

// AsConflict unwraps err into a ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

// ErrStorageUnavailable marks infrastructure faults. Surfaced as a retryable
// server error, never mistaken for a booking conflict.
var ErrStorageUnavailable = errors.New("seat storage unavailable")

// ErrScreeningNotFound is returned when the screening does not exist.
var ErrScreeningNotFound = errors.New("screening not found")

// ErrReservationNotFound is returned for unknown reservation IDs.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrAlreadyCancelled is returned when cancelling a cancelled reservation.
var ErrAlreadyCancelled = errors.New("reservation is already cancelled")
