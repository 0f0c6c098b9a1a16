package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seatly/internal/notify"
	"seatly/internal/shared/config"
	"seatly/pkg/logger"
)

// CatalogSeat is the seat detail the inventory core needs from the catalog.
type CatalogSeat struct {
	ID           uuid.UUID
	Row          int
	Number       int
	IsWheelchair bool
}

// Catalog is the inventory core's read-only view of screenings and halls.
// Wired to the screenings and halls services at startup.
type Catalog interface {
	// ScreeningSeats returns the full seat set of the screening's hall, or
	// ErrScreeningNotFound.
	ScreeningSeats(ctx context.Context, screeningID uuid.UUID) ([]CatalogSeat, error)
}

type Service interface {
	// Hold places a TTL-bounded advisory claim on a seat batch, all or
	// nothing. Re-holding own seats slides their expiry.
	Hold(ctx context.Context, screeningID uuid.UUID, clientID string, req HoldRequest) (*HoldResponse, error)
	// Release drops the caller's own holds. Idempotent.
	Release(ctx context.Context, screeningID uuid.UUID, clientID string, req ReleaseRequest) error
	// Commit converts a seat batch into a permanent reservation. Holds are
	// not required; foreign holds and existing reservations block it.
	Commit(ctx context.Context, clientID string, req CommitRequest) (*Reservation, error)
	// GetSeatMap snapshots per-seat availability from the caller's view.
	GetSeatMap(ctx context.Context, screeningID uuid.UUID, clientID string) (*SeatMap, error)
	// Cancel voids the caller's reservation and frees its seats.
	Cancel(ctx context.Context, reservationID uuid.UUID, clientID string) (*Reservation, error)

	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListReservations(ctx context.Context, screeningID uuid.UUID) ([]Reservation, error)
	ListClientReservations(ctx context.Context, clientID string) ([]Reservation, error)
}

type service struct {
	repo      Repository
	holds     HoldLedger
	catalog   Catalog
	publisher notify.Publisher
	holdCfg   config.HoldConfig
	log       *logger.Logger
}

func NewService(repo Repository, holds HoldLedger, catalog Catalog, publisher notify.Publisher, holdCfg config.HoldConfig, log *logger.Logger) Service {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &service{
		repo:      repo,
		holds:     holds,
		catalog:   catalog,
		publisher: publisher,
		holdCfg:   holdCfg,
		log:       log,
	}
}

// clampTTL resolves the effective hold duration: the configured default when
// the request does not ask, capped at the configured maximum when it does.
func (s *service) clampTTL(requestedSeconds int) time.Duration {
	if requestedSeconds <= 0 {
		return s.holdCfg.DefaultTTL
	}
	ttl := time.Duration(requestedSeconds) * time.Second
	if ttl > s.holdCfg.MaxTTL {
		return s.holdCfg.MaxTTL
	}
	return ttl
}

// snapshot gathers the state Resolve decides against. The screening lookup
// doubles as existence check.
func (s *service) snapshot(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID) (Snapshot, error) {
	seats, err := s.catalog.ScreeningSeats(ctx, screeningID)
	if err != nil {
		return Snapshot{}, err
	}

	valid := make(map[uuid.UUID]bool, len(seats))
	for _, seat := range seats {
		valid[seat.ID] = true
	}

	reservedIDs, err := s.repo.ReservedSeatIDs(ctx, screeningID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load reserved seats: %w", err)
	}
	reserved := make(map[uuid.UUID]bool, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = true
	}

	heldBy, err := s.holds.Owners(ctx, screeningID, seatIDs)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{ValidSeats: valid, Reserved: reserved, HeldBy: heldBy}, nil
}

func (s *service) Hold(ctx context.Context, screeningID uuid.UUID, clientID string, req HoldRequest) (*HoldResponse, error) {
	seatIDs := Dedupe(req.SeatIDs)
	ttl := s.clampTTL(req.TTLSeconds)

	snap, err := s.snapshot(ctx, screeningID, seatIDs)
	if err != nil {
		return nil, err
	}
	// The snapshot resolve rejects invalid and reserved seats before any
	// write. Foreign holds are re-checked atomically inside Acquire, so a
	// hold racing in between the snapshot and the script still loses cleanly.
	if err := Resolve(snap, clientID, seatIDs); err != nil {
		return nil, err
	}

	blocking, err := s.holds.Acquire(ctx, screeningID, seatIDs, clientID, ttl)
	if err != nil {
		return nil, err
	}
	if len(blocking) > 0 {
		return nil, NewConflictError(KindSeatHeld, blocking)
	}

	expiresAt := time.Now().UTC().Add(ttl)
	s.log.LogHoldPlaced(ctx, screeningID.String(), clientID, len(seatIDs), expiresAt)
	s.publisher.Publish(ctx, notify.Delta{
		ScreeningID: screeningID,
		Reason:      notify.ReasonHoldUpdated,
		SeatIDs:     seatIDs,
		At:          time.Now().UTC(),
	})

	return &HoldResponse{
		ScreeningID: screeningID,
		SeatIDs:     seatIDs,
		TTLSeconds:  int(ttl.Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *service) Release(ctx context.Context, screeningID uuid.UUID, clientID string, req ReleaseRequest) error {
	seatIDs := Dedupe(req.SeatIDs)

	// Existence check only; releasing unheld seats is a no-op, not an error.
	if _, err := s.catalog.ScreeningSeats(ctx, screeningID); err != nil {
		return err
	}

	if err := s.holds.Release(ctx, screeningID, seatIDs, clientID); err != nil {
		return err
	}

	s.log.LogHoldReleased(ctx, screeningID.String(), clientID, len(seatIDs))
	s.publisher.Publish(ctx, notify.Delta{
		ScreeningID: screeningID,
		Reason:      notify.ReasonHoldUpdated,
		SeatIDs:     seatIDs,
		At:          time.Now().UTC(),
	})
	return nil
}

func (s *service) Commit(ctx context.Context, clientID string, req CommitRequest) (*Reservation, error) {
	seatIDs := Dedupe(req.SeatIDs)

	snap, err := s.snapshot(ctx, req.ScreeningID, seatIDs)
	if err != nil {
		return nil, err
	}
	if err := Resolve(snap, clientID, seatIDs); err != nil {
		return nil, err
	}

	reservation := &Reservation{
		ScreeningID:   req.ScreeningID,
		ClientID:      clientID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        StatusConfirmed,
		Seats:         make([]ReservedSeat, len(seatIDs)),
	}
	for i, seatID := range seatIDs {
		reservation.Seats[i] = ReservedSeat{
			ScreeningID: req.ScreeningID,
			SeatID:      seatID,
		}
	}

	// The unique index on reserved_seats settles any race the snapshot
	// missed: a concurrent commit on a shared seat makes exactly one of the
	// inserts fail, and that failure comes back as SEAT_RESERVED.
	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	// The reservation is durable; the committer's own holds on these seats
	// are now redundant. Best effort: if the delete fails they lapse by TTL.
	if err := s.holds.Release(ctx, req.ScreeningID, seatIDs, clientID); err != nil {
		s.log.WithError(err).Warn("Failed to clear holds after commit",
			"screening_id", req.ScreeningID.String())
	}

	s.log.LogReservationCommitted(ctx, reservation.ID.String(), req.ScreeningID.String(), clientID, len(seatIDs))
	s.publisher.Publish(ctx, notify.Delta{
		ScreeningID: req.ScreeningID,
		Reason:      notify.ReasonReserved,
		SeatIDs:     seatIDs,
		At:          time.Now().UTC(),
	})
	return reservation, nil
}

func (s *service) GetSeatMap(ctx context.Context, screeningID uuid.UUID, clientID string) (*SeatMap, error) {
	seats, err := s.catalog.ScreeningSeats(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	seatIDs := make([]uuid.UUID, len(seats))
	for i, seat := range seats {
		seatIDs[i] = seat.ID
	}

	reservedIDs, err := s.repo.ReservedSeatIDs(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reserved seats: %w", err)
	}
	reserved := make(map[uuid.UUID]bool, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = true
	}

	owners, err := s.holds.Owners(ctx, screeningID, seatIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]SeatMapEntry, len(seats))
	for i, seat := range seats {
		entry := SeatMapEntry{
			SeatID:       seat.ID,
			Row:          seat.Row,
			Number:       seat.Number,
			IsWheelchair: seat.IsWheelchair,
			State:        SeatFree,
		}
		// Reserved wins over held: a hold that survived commit as a stale
		// key must not mask the permanent state.
		if reserved[seat.ID] {
			entry.State = SeatReserved
		} else if owner, ok := owners[seat.ID]; ok {
			entry.State = SeatHeld
			entry.HeldByMe = clientID != "" && owner == clientID
		}
		entries[i] = entry
	}

	return &SeatMap{
		ScreeningID: screeningID,
		Seats:       entries,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (s *service) Cancel(ctx context.Context, reservationID uuid.UUID, clientID string) (*Reservation, error) {
	reservation, freed, err := s.repo.Cancel(ctx, reservationID, clientID)
	if err != nil {
		return nil, err
	}

	s.log.LogReservationCancelled(ctx, reservationID.String(), reservation.ScreeningID.String(), len(freed))
	s.publisher.Publish(ctx, notify.Delta{
		ScreeningID: reservation.ScreeningID,
		Reason:      notify.ReasonCancelled,
		SeatIDs:     freed,
		At:          time.Now().UTC(),
	})
	return reservation, nil
}

func (s *service) GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (s *service) ListReservations(ctx context.Context, screeningID uuid.UUID) ([]Reservation, error) {
	return s.repo.List(ctx, screeningID)
}

func (s *service) ListClientReservations(ctx context.Context, clientID string) ([]Reservation, error) {
	return s.repo.ListByClient(ctx, clientID)
}
