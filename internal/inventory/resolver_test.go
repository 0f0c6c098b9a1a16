package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(valid []uuid.UUID) Snapshot {
	snap := Snapshot{
		ValidSeats: make(map[uuid.UUID]bool, len(valid)),
		Reserved:   make(map[uuid.UUID]bool),
		HeldBy:     make(map[uuid.UUID]string),
	}
	for _, id := range valid {
		snap.ValidSeats[id] = true
	}
	return snap
}

func requireConflict(t *testing.T, err error, kind ConflictKind, seats ...uuid.UUID) {
	t.Helper()
	conflict, ok := AsConflict(err)
	require.True(t, ok, "expected ConflictError, got %v", err)
	assert.Equal(t, kind, conflict.Kind)
	assert.ElementsMatch(t, seats, conflict.SeatIDs)
}

func TestResolveGrantsFreeSeats(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	snap := snapshotWith([]uuid.UUID{a1, a2})

	assert.NoError(t, Resolve(snap, "client-x", []uuid.UUID{a1, a2}))
}

func TestResolveRejectsUnknownSeats(t *testing.T) {
	a1 := uuid.New()
	ghost := uuid.New()
	snap := snapshotWith([]uuid.UUID{a1})

	err := Resolve(snap, "client-x", []uuid.UUID{a1, ghost})
	requireConflict(t, err, KindInvalidSeat, ghost)
}

func TestResolveForeignHoldBlocksWholeBatch(t *testing.T) {
	a1, a2, a3 := uuid.New(), uuid.New(), uuid.New()
	snap := snapshotWith([]uuid.UUID{a1, a2, a3})
	snap.HeldBy[a1] = "client-x"
	snap.HeldBy[a2] = "client-x"

	// Y asks for A2+A3; X's hold on A2 rejects the whole batch, naming A2.
	err := Resolve(snap, "client-y", []uuid.UUID{a2, a3})
	requireConflict(t, err, KindSeatHeld, a2)

	// A3 alone is free for Y.
	assert.NoError(t, Resolve(snap, "client-y", []uuid.UUID{a3}))
}

func TestResolveOwnHoldsNeverBlock(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	snap := snapshotWith([]uuid.UUID{a1, a2})
	snap.HeldBy[a1] = "client-x"
	snap.HeldBy[a2] = "client-x"

	// X commits (or re-holds) its own held seats.
	assert.NoError(t, Resolve(snap, "client-x", []uuid.UUID{a1, a2}))
}

func TestResolveReservedSeatsRejectEveryone(t *testing.T) {
	a1, a2, a3 := uuid.New(), uuid.New(), uuid.New()
	snap := snapshotWith([]uuid.UUID{a1, a2, a3})
	snap.Reserved[a1] = true
	snap.Reserved[a2] = true

	// After X's commit, even X cannot touch the seats again.
	for _, client := range []string{"client-x", "client-y"} {
		err := Resolve(snap, client, []uuid.UUID{a2, a3})
		requireConflict(t, err, KindSeatReserved, a2)
	}

	assert.NoError(t, Resolve(snap, "client-y", []uuid.UUID{a3}))
}

func TestResolveReservedWinsOverHeldInReport(t *testing.T) {
	a1 := uuid.New()
	snap := snapshotWith([]uuid.UUID{a1})
	snap.Reserved[a1] = true
	snap.HeldBy[a1] = "client-x"

	// A stale hold key on a reserved seat must report SEAT_RESERVED.
	err := Resolve(snap, "client-y", []uuid.UUID{a1})
	requireConflict(t, err, KindSeatReserved, a1)
}

func TestResolveSeverityOrderInvalidFirst(t *testing.T) {
	a1, ghost := uuid.New(), uuid.New()
	snap := snapshotWith([]uuid.UUID{a1})
	snap.Reserved[a1] = true

	// Batch has both an unknown seat and a reserved one: the unknown seat
	// is the hardest problem and wins the report.
	err := Resolve(snap, "client-y", []uuid.UUID{a1, ghost})
	requireConflict(t, err, KindInvalidSeat, ghost)
}

func TestResolveExpiredHoldIsAbsent(t *testing.T) {
	a1 := uuid.New()
	snap := snapshotWith([]uuid.UUID{a1})
	// An expired hold never reaches the snapshot; there is nothing to
	// distinguish it from a seat that was never held.

	assert.NoError(t, Resolve(snap, "client-y", []uuid.UUID{a1}))
}

func TestDedupePreservesOrder(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()

	deduped := Dedupe([]uuid.UUID{a1, a2, a1, a2, a1})
	assert.Equal(t, []uuid.UUID{a1, a2}, deduped)
}

func TestConflictErrorSortsSeats(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()

	first := NewConflictError(KindSeatHeld, []uuid.UUID{a1, a2})
	second := NewConflictError(KindSeatHeld, []uuid.UUID{a2, a1})
	assert.Equal(t, first.Error(), second.Error())
}
