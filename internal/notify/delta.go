package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reason says which kind of mutation produced a delta.
type Reason string

const (
	ReasonHoldUpdated Reason = "hold_updated"
	ReasonReserved    Reason = "reserved"
	ReasonCancelled   Reason = "cancelled"
)

// Delta announces that seat availability changed for a screening. It names
// the seats but not their new state: consumers re-fetch the seat map, which
// keeps the authoritative read path single.
type Delta struct {
	ScreeningID uuid.UUID   `json:"screening_id"`
	Reason      Reason      `json:"reason"`
	SeatIDs     []uuid.UUID `json:"seat_ids"`
	At          time.Time   `json:"at"`
}

// Publisher delivers deltas best-effort. Implementations must not block the
// booking path and must swallow delivery failures; a lost delta costs one
// poll interval of staleness, never correctness.
type Publisher interface {
	Publish(ctx context.Context, delta Delta)
}

// NopPublisher discards every delta. Used in tests and when no transport is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, delta Delta) {}
