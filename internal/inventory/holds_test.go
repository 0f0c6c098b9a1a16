package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldKeyFormat(t *testing.T) {
	screeningID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seatID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		"seat_hold:11111111-1111-1111-1111-111111111111:22222222-2222-2222-2222-222222222222",
		holdKey(screeningID, seatID))
}

func TestAcquireGrantsAllSeats(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	ledger := NewRedisHoldLedger(client)

	screeningID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New()}
	keys := []string{holdKey(screeningID, seatIDs[0]), holdKey(screeningID, seatIDs[1])}

	mockRedis.ExpectEvalSha(acquireScript.Hash(), keys, "client-x", int64(120000)).
		SetVal([]interface{}{})

	blocking, err := ledger.Acquire(context.Background(), screeningID, seatIDs, "client-x", 120*time.Second)
	require.NoError(t, err)
	assert.Empty(t, blocking)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestAcquireReportsBlockingSeats(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	ledger := NewRedisHoldLedger(client)

	screeningID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	keys := make([]string, len(seatIDs))
	for i, seatID := range seatIDs {
		keys[i] = holdKey(screeningID, seatID)
	}

	// Script indices are 1-based: seats 2 and 3 are foreign-held.
	mockRedis.ExpectEvalSha(acquireScript.Hash(), keys, "client-y", int64(120000)).
		SetVal([]interface{}{int64(2), int64(3)})

	blocking, err := ledger.Acquire(context.Background(), screeningID, seatIDs, "client-y", 120*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{seatIDs[1], seatIDs[2]}, blocking)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestAcquireWrapsRedisFailure(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	ledger := NewRedisHoldLedger(client)

	screeningID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New()}
	keys := []string{holdKey(screeningID, seatIDs[0])}

	mockRedis.ExpectEvalSha(acquireScript.Hash(), keys, "client-x", int64(120000)).
		SetErr(assert.AnError)

	_, err := ledger.Acquire(context.Background(), screeningID, seatIDs, "client-x", 120*time.Second)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestReleaseRunsCompareAndDelete(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	ledger := NewRedisHoldLedger(client)

	screeningID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New()}
	keys := []string{holdKey(screeningID, seatIDs[0])}

	mockRedis.ExpectEvalSha(releaseScript.Hash(), keys, "client-x").SetVal(int64(1))

	err := ledger.Release(context.Background(), screeningID, seatIDs, "client-x")
	require.NoError(t, err)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestOwnersSkipsUnheldSeats(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	ledger := NewRedisHoldLedger(client)

	screeningID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	keys := make([]string, len(seatIDs))
	for i, seatID := range seatIDs {
		keys[i] = holdKey(screeningID, seatID)
	}

	mockRedis.ExpectMGet(keys...).SetVal([]interface{}{"client-x", nil, "client-y"})

	owners, err := ledger.Owners(context.Background(), screeningID, seatIDs)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{
		seatIDs[0]: "client-x",
		seatIDs[2]: "client-y",
	}, owners)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestOwnersEmptyBatch(t *testing.T) {
	client, _ := redismock.NewClientMock()
	ledger := NewRedisHoldLedger(client)

	owners, err := ledger.Owners(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, owners)
}
