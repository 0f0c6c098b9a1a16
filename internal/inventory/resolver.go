package inventory

import (
	"github.com/google/uuid"
)

// Snapshot is the state the resolver decides against: the screening's valid
// seat set, the reserved set, and the current hold owners.
type Snapshot struct {
	ValidSeats map[uuid.UUID]bool
	Reserved   map[uuid.UUID]bool
	HeldBy     map[uuid.UUID]string
}

// Resolve decides a seat batch all-or-nothing for the given client. The
// checks run in severity order so the client always learns the hardest
// problem first: unknown seats, then reserved seats, then foreign holds.
// The caller's own holds never block it. A nil return means the whole batch
// is grantable against this snapshot.
func Resolve(snap Snapshot, clientID string, seatIDs []uuid.UUID) error {
	var invalid, reserved, held []uuid.UUID

	for _, seatID := range seatIDs {
		switch {
		case !snap.ValidSeats[seatID]:
			invalid = append(invalid, seatID)
		case snap.Reserved[seatID]:
			reserved = append(reserved, seatID)
		default:
			if owner, ok := snap.HeldBy[seatID]; ok && owner != clientID {
				held = append(held, seatID)
			}
		}
	}

	switch {
	case len(invalid) > 0:
		return NewConflictError(KindInvalidSeat, invalid)
	case len(reserved) > 0:
		return NewConflictError(KindSeatReserved, reserved)
	case len(held) > 0:
		return NewConflictError(KindSeatHeld, held)
	}
	return nil
}

// Dedupe drops repeated seat IDs while keeping first-seen order. Duplicate
// seats inside one request are a client sloppiness, not a conflict.
func Dedupe(seatIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(seatIDs))
	out := make([]uuid.UUID, 0, len(seatIDs))
	for _, id := range seatIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
