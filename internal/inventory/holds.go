package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// HoldLedger is the advisory claim store. Holds are soft state: losing them
// never corrupts a booking, it only costs UX, so the ledger lives in Redis
// and expiry is delegated to native key TTLs.
type HoldLedger interface {
	// Acquire claims every seat for clientID atomically, or none of them.
	// Seats already held by clientID are refreshed to the new TTL. On a
	// foreign hold it returns the blocking seats.
	Acquire(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID, clientID string, ttl time.Duration) ([]uuid.UUID, error)
	// Release drops clientID's holds on the seats. Foreign holds and
	// already-expired keys are left untouched; release is idempotent.
	Release(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID, clientID string) error
	// Owners returns the current owner per held seat in the screening's
	// seat set. Unheld seats are absent from the map.
	Owners(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

// acquireScript claims all keys or none. Pass 1 scans for a foreign owner;
// pass 2 writes. Returning the conflicting indices lets the caller name the
// exact blocking seats without a second round trip.
var acquireScript = redis.NewScript(`
local conflicts = {}
for i, key in ipairs(KEYS) do
    local owner = redis.call('GET', key)
    if owner and owner ~= ARGV[1] then
        table.insert(conflicts, i)
    end
end
if #conflicts > 0 then
    return conflicts
end
for _, key in ipairs(KEYS) do
    redis.call('SET', key, ARGV[1], 'PX', ARGV[2])
end
return {}
`)

// releaseScript deletes each key only if the caller still owns it, so a
// stale release can never evict a hold the seat has since been re-granted to
// someone else.
var releaseScript = redis.NewScript(`
for _, key in ipairs(KEYS) do
    if redis.call('GET', key) == ARGV[1] then
        redis.call('DEL', key)
    end
end
return 1
`)

type redisHoldLedger struct {
	client *redis.Client
}

// NewRedisHoldLedger builds the Redis-backed hold ledger.
func NewRedisHoldLedger(client *redis.Client) HoldLedger {
	return &redisHoldLedger{client: client}
}

// PreloadHoldScripts loads the Lua scripts at startup so the first booking
// request does not pay the SCRIPT LOAD round trip.
func PreloadHoldScripts(ctx context.Context, client *redis.Client) error {
	if err := acquireScript.Load(ctx, client).Err(); err != nil {
		return fmt.Errorf("failed to load hold acquire script: %w", err)
	}
	if err := releaseScript.Load(ctx, client).Err(); err != nil {
		return fmt.Errorf("failed to load hold release script: %w", err)
	}
	return nil
}

func holdKey(screeningID, seatID uuid.UUID) string {
	return fmt.Sprintf("seat_hold:%s:%s", screeningID, seatID)
}

func (l *redisHoldLedger) keys(screeningID uuid.UUID, seatIDs []uuid.UUID) []string {
	keys := make([]string, len(seatIDs))
	for i, seatID := range seatIDs {
		keys[i] = holdKey(screeningID, seatID)
	}
	return keys
}

func (l *redisHoldLedger) Acquire(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID, clientID string, ttl time.Duration) ([]uuid.UUID, error) {
	keys := l.keys(screeningID, seatIDs)
	result, err := acquireScript.Run(ctx, l.client, keys, clientID, ttl.Milliseconds()).Slice()
	if err != nil {
		return nil, fmt.Errorf("%w: hold acquire: %v", ErrStorageUnavailable, err)
	}

	if len(result) == 0 {
		return nil, nil
	}
	blocking := make([]uuid.UUID, 0, len(result))
	for _, raw := range result {
		idx, ok := raw.(int64)
		if !ok || idx < 1 || int(idx) > len(seatIDs) {
			return nil, fmt.Errorf("%w: hold acquire returned index %v", ErrStorageUnavailable, raw)
		}
		blocking = append(blocking, seatIDs[idx-1])
	}
	return blocking, nil
}

func (l *redisHoldLedger) Release(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID, clientID string) error {
	keys := l.keys(screeningID, seatIDs)
	if err := releaseScript.Run(ctx, l.client, keys, clientID).Err(); err != nil {
		return fmt.Errorf("%w: hold release: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (l *redisHoldLedger) Owners(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(seatIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	keys := l.keys(screeningID, seatIDs)
	values, err := l.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: hold lookup: %v", ErrStorageUnavailable, err)
	}

	owners := make(map[uuid.UUID]string)
	for i, value := range values {
		if owner, ok := value.(string); ok && owner != "" {
			owners[seatIDs[i]] = owner
		}
	}
	return owners, nil
}
