package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHubDeliversToScreeningSubscribers(t *testing.T) {
	hub := NewHub(nil)
	screeningID := uuid.New()
	otherScreening := uuid.New()

	ch, cancel := hub.Subscribe(screeningID)
	defer cancel()
	otherCh, otherCancel := hub.Subscribe(otherScreening)
	defer otherCancel()

	delta := Delta{
		ScreeningID: screeningID,
		Reason:      ReasonReserved,
		SeatIDs:     []uuid.UUID{uuid.New()},
		At:          time.Now(),
	}
	hub.Publish(context.Background(), delta)

	select {
	case got := <-ch:
		assert.Equal(t, delta.ScreeningID, got.ScreeningID)
		assert.Equal(t, ReasonReserved, got.Reason)
	case <-time.After(time.Second):
		t.Fatal("expected delta on subscriber channel")
	}

	select {
	case <-otherCh:
		t.Fatal("delta leaked to another screening's subscriber")
	default:
	}
}

func TestHubNonBlockingOnSlowSubscriber(t *testing.T) {
	hub := NewHub(nil)
	screeningID := uuid.New()

	_, cancel := hub.Subscribe(screeningID)
	defer cancel()

	// Channel buffer is 16; publishing more must not block the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			hub.Publish(context.Background(), Delta{ScreeningID: screeningID, Reason: ReasonHoldUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHubCancelUnsubscribes(t *testing.T) {
	hub := NewHub(nil)
	screeningID := uuid.New()

	_, cancel := hub.Subscribe(screeningID)
	assert.Equal(t, 1, hub.SubscriberCount(screeningID))

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount(screeningID))

	// Double cancel is a no-op.
	cancel()
	assert.Equal(t, 0, hub.SubscriberCount(screeningID))
}
