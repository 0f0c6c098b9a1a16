package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seatly/internal/notify"
	"seatly/internal/shared/config"
	"seatly/pkg/logger"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateReservation(ctx context.Context, reservation *Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, screeningID uuid.UUID) ([]Reservation, error) {
	args := m.Called(ctx, screeningID)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *mockRepository) ListByClient(ctx context.Context, clientID string) ([]Reservation, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *mockRepository) ReservedSeatIDs(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, screeningID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockRepository) Cancel(ctx context.Context, id uuid.UUID, clientID string) (*Reservation, []uuid.UUID, error) {
	args := m.Called(ctx, id, clientID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*Reservation), args.Get(1).([]uuid.UUID), args.Error(2)
}

type mockHoldLedger struct {
	mock.Mock
}

func (m *mockHoldLedger) Acquire(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID, clientID string, ttl time.Duration) ([]uuid.UUID, error) {
	args := m.Called(ctx, screeningID, seatIDs, clientID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockHoldLedger) Release(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID, clientID string) error {
	args := m.Called(ctx, screeningID, seatIDs, clientID)
	return args.Error(0)
}

func (m *mockHoldLedger) Owners(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, screeningID, seatIDs)
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ScreeningSeats(ctx context.Context, screeningID uuid.UUID) ([]CatalogSeat, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CatalogSeat), args.Error(1)
}

// recordingPublisher captures published deltas for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	deltas []notify.Delta
}

func (p *recordingPublisher) Publish(ctx context.Context, delta notify.Delta) {
	p.mu.Lock()
	p.deltas = append(p.deltas, delta)
	p.mu.Unlock()
}

func (p *recordingPublisher) published() []notify.Delta {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Delta(nil), p.deltas...)
}

type serviceFixture struct {
	repo      *mockRepository
	holds     *mockHoldLedger
	catalog   *mockCatalog
	publisher *recordingPublisher
	service   Service

	screeningID uuid.UUID
	seats       []CatalogSeat
}

func newServiceFixture(t *testing.T, seatCount int) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		repo:        new(mockRepository),
		holds:       new(mockHoldLedger),
		catalog:     new(mockCatalog),
		publisher:   &recordingPublisher{},
		screeningID: uuid.New(),
	}
	for i := 0; i < seatCount; i++ {
		f.seats = append(f.seats, CatalogSeat{ID: uuid.New(), Row: 1, Number: i + 1})
	}

	holdCfg := config.HoldConfig{
		DefaultTTL: 120 * time.Second,
		MaxTTL:     15 * time.Minute,
	}
	f.service = NewService(f.repo, f.holds, f.catalog, f.publisher, holdCfg, logger.New())
	return f
}

func (f *serviceFixture) seatIDs(indexes ...int) []uuid.UUID {
	ids := make([]uuid.UUID, len(indexes))
	for i, idx := range indexes {
		ids[i] = f.seats[idx].ID
	}
	return ids
}

func TestHoldUsesDefaultTTLWhenUnset(t *testing.T) {
	f := newServiceFixture(t, 2)
	seatIDs := f.seatIDs(0, 1)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)
	f.holds.On("Acquire", mock.Anything, f.screeningID, seatIDs, "client-x", 120*time.Second).Return([]uuid.UUID{}, nil)

	hold, err := f.service.Hold(context.Background(), f.screeningID, "client-x", HoldRequest{SeatIDs: seatIDs})
	require.NoError(t, err)
	assert.Equal(t, 120, hold.TTLSeconds)
	f.holds.AssertExpectations(t)
}

func TestHoldClampsTTLToMax(t *testing.T) {
	f := newServiceFixture(t, 1)
	seatIDs := f.seatIDs(0)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)
	f.holds.On("Acquire", mock.Anything, f.screeningID, seatIDs, "client-x", 15*time.Minute).Return([]uuid.UUID{}, nil)

	hold, err := f.service.Hold(context.Background(), f.screeningID, "client-x", HoldRequest{
		SeatIDs:    seatIDs,
		TTLSeconds: 3600,
	})
	require.NoError(t, err)
	assert.Equal(t, int((15 * time.Minute).Seconds()), hold.TTLSeconds)
	f.holds.AssertExpectations(t)
}

func TestHoldInvalidSeatWritesNothing(t *testing.T) {
	f := newServiceFixture(t, 1)
	ghost := uuid.New()
	seatIDs := []uuid.UUID{f.seats[0].ID, ghost}

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)

	_, err := f.service.Hold(context.Background(), f.screeningID, "client-x", HoldRequest{SeatIDs: seatIDs})
	requireConflict(t, err, KindInvalidSeat, ghost)

	f.holds.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.published(), "rejected hold must not publish a delta")
}

func TestHoldForeignHoldConflict(t *testing.T) {
	f := newServiceFixture(t, 2)
	seatIDs := f.seatIDs(0, 1)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)
	// The snapshot saw nothing, but the atomic acquire lost the race.
	f.holds.On("Acquire", mock.Anything, f.screeningID, seatIDs, "client-y", 120*time.Second).
		Return([]uuid.UUID{f.seats[1].ID}, nil)

	_, err := f.service.Hold(context.Background(), f.screeningID, "client-y", HoldRequest{SeatIDs: seatIDs})
	requireConflict(t, err, KindSeatHeld, f.seats[1].ID)
	assert.Empty(t, f.publisher.published())
}

func TestHoldPublishesSingleDelta(t *testing.T) {
	f := newServiceFixture(t, 1)
	seatIDs := f.seatIDs(0)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)
	f.holds.On("Acquire", mock.Anything, f.screeningID, seatIDs, "client-x", mock.Anything).Return([]uuid.UUID{}, nil)

	_, err := f.service.Hold(context.Background(), f.screeningID, "client-x", HoldRequest{SeatIDs: seatIDs})
	require.NoError(t, err)

	deltas := f.publisher.published()
	require.Len(t, deltas, 1)
	assert.Equal(t, notify.ReasonHoldUpdated, deltas[0].Reason)
	assert.Equal(t, f.screeningID, deltas[0].ScreeningID)
	assert.Equal(t, seatIDs, deltas[0].SeatIDs)
}

func TestCommitClearsOwnHoldsAndPublishes(t *testing.T) {
	f := newServiceFixture(t, 2)
	seatIDs := f.seatIDs(0, 1)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{
		f.seats[0].ID: "client-x",
		f.seats[1].ID: "client-x",
	}, nil)
	f.repo.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *Reservation) bool {
		return r.ScreeningID == f.screeningID && r.ClientID == "client-x" &&
			r.Status == StatusConfirmed && len(r.Seats) == 2
	})).Return(nil)
	f.holds.On("Release", mock.Anything, f.screeningID, seatIDs, "client-x").Return(nil)

	reservation, err := f.service.Commit(context.Background(), "client-x", CommitRequest{
		ScreeningID:   f.screeningID,
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		SeatIDs:       seatIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, reservation.Status)

	f.holds.AssertCalled(t, "Release", mock.Anything, f.screeningID, seatIDs, "client-x")

	deltas := f.publisher.published()
	require.Len(t, deltas, 1)
	assert.Equal(t, notify.ReasonReserved, deltas[0].Reason)
}

func TestCommitBlockedByForeignHold(t *testing.T) {
	f := newServiceFixture(t, 2)
	seatIDs := f.seatIDs(0, 1)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{
		f.seats[1].ID: "client-x",
	}, nil)

	_, err := f.service.Commit(context.Background(), "client-y", CommitRequest{
		ScreeningID:   f.screeningID,
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		SeatIDs:       seatIDs,
	})
	requireConflict(t, err, KindSeatHeld, f.seats[1].ID)

	f.repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.published())
}

func TestCommitInvalidSeatWritesNothing(t *testing.T) {
	f := newServiceFixture(t, 1)
	ghost := uuid.New()
	seatIDs := []uuid.UUID{f.seats[0].ID, ghost}

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)

	_, err := f.service.Commit(context.Background(), "client-x", CommitRequest{
		ScreeningID:   f.screeningID,
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		SeatIDs:       seatIDs,
	})
	requireConflict(t, err, KindInvalidSeat, ghost)

	f.repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	f.holds.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.published())
}

func TestCommitLosingInsertRaceSurfacesSeatReserved(t *testing.T) {
	f := newServiceFixture(t, 1)
	seatIDs := f.seatIDs(0)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, seatIDs).Return(map[uuid.UUID]string{}, nil)
	// Unique index fired under us; the repository reports the taken seats.
	f.repo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(NewConflictError(KindSeatReserved, seatIDs))

	_, err := f.service.Commit(context.Background(), "client-y", CommitRequest{
		ScreeningID:   f.screeningID,
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		SeatIDs:       seatIDs,
	})
	requireConflict(t, err, KindSeatReserved, seatIDs[0])

	f.holds.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.published())
}

func TestReleasePublishesDelta(t *testing.T) {
	f := newServiceFixture(t, 2)
	seatIDs := f.seatIDs(0, 1)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.holds.On("Release", mock.Anything, f.screeningID, seatIDs, "client-x").Return(nil)

	err := f.service.Release(context.Background(), f.screeningID, "client-x", ReleaseRequest{SeatIDs: seatIDs})
	require.NoError(t, err)

	deltas := f.publisher.published()
	require.Len(t, deltas, 1)
	assert.Equal(t, notify.ReasonHoldUpdated, deltas[0].Reason)
}

func TestSeatMapStatesAndOwnership(t *testing.T) {
	f := newServiceFixture(t, 3)
	allIDs := f.seatIDs(0, 1, 2)

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{f.seats[0].ID}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, allIDs).Return(map[uuid.UUID]string{
		f.seats[1].ID: "client-x",
	}, nil)

	seatMap, err := f.service.GetSeatMap(context.Background(), f.screeningID, "client-x")
	require.NoError(t, err)
	require.Len(t, seatMap.Seats, 3)

	byID := make(map[uuid.UUID]SeatMapEntry)
	for _, entry := range seatMap.Seats {
		byID[entry.SeatID] = entry
	}
	assert.Equal(t, SeatReserved, byID[f.seats[0].ID].State)
	assert.Equal(t, SeatHeld, byID[f.seats[1].ID].State)
	assert.True(t, byID[f.seats[1].ID].HeldByMe)
	assert.Equal(t, SeatFree, byID[f.seats[2].ID].State)

	// A different viewer sees held, not held-by-me.
	seatMap, err = f.service.GetSeatMap(context.Background(), f.screeningID, "client-y")
	require.NoError(t, err)
	for _, entry := range seatMap.Seats {
		assert.False(t, entry.HeldByMe)
	}
}

func TestCancelPublishesFreedSeats(t *testing.T) {
	f := newServiceFixture(t, 2)
	freed := f.seatIDs(0, 1)
	reservationID := uuid.New()

	f.repo.On("Cancel", mock.Anything, reservationID, "").Return(&Reservation{
		ID:          reservationID,
		ScreeningID: f.screeningID,
		Status:      StatusCancelled,
	}, freed, nil)

	reservation, err := f.service.Cancel(context.Background(), reservationID, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, reservation.Status)

	deltas := f.publisher.published()
	require.Len(t, deltas, 1)
	assert.Equal(t, notify.ReasonCancelled, deltas[0].Reason)
	assert.ElementsMatch(t, freed, deltas[0].SeatIDs)
}

func TestHoldDeduplicatesSeatBatch(t *testing.T) {
	f := newServiceFixture(t, 1)
	seatID := f.seats[0].ID
	deduped := []uuid.UUID{seatID}

	f.catalog.On("ScreeningSeats", mock.Anything, f.screeningID).Return(f.seats, nil)
	f.repo.On("ReservedSeatIDs", mock.Anything, f.screeningID).Return([]uuid.UUID{}, nil)
	f.holds.On("Owners", mock.Anything, f.screeningID, deduped).Return(map[uuid.UUID]string{}, nil)
	f.holds.On("Acquire", mock.Anything, f.screeningID, deduped, "client-x", mock.Anything).Return([]uuid.UUID{}, nil)

	hold, err := f.service.Hold(context.Background(), f.screeningID, "client-x", HoldRequest{
		SeatIDs: []uuid.UUID{seatID, seatID, seatID},
	})
	require.NoError(t, err)
	assert.Equal(t, deduped, hold.SeatIDs)
	f.holds.AssertExpectations(t)
}
