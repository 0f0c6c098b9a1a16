package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"seatly/pkg/logger"
)

// Hub fans deltas out to in-process subscribers, one group per screening.
// It backs the SSE live feed. Sends are non-blocking: a subscriber that
// stops draining its channel misses deltas instead of stalling publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan Delta]struct{}
	log         *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[chan Delta]struct{}),
		log:         log,
	}
}

// Subscribe registers a buffered channel for one screening's deltas. The
// returned cancel func unregisters and closes the channel; it is safe to
// call once.
func (h *Hub) Subscribe(screeningID uuid.UUID) (<-chan Delta, func()) {
	ch := make(chan Delta, 16)

	h.mu.Lock()
	group, ok := h.subscribers[screeningID]
	if !ok {
		group = make(map[chan Delta]struct{})
		h.subscribers[screeningID] = group
	}
	group[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if group, ok := h.subscribers[screeningID]; ok {
			if _, present := group[ch]; present {
				delete(group, ch)
				close(ch)
			}
			if len(group) == 0 {
				delete(h.subscribers, screeningID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(ctx context.Context, delta Delta) {
	h.mu.RLock()
	group := h.subscribers[delta.ScreeningID]
	dropped := 0
	for ch := range group {
		select {
		case ch <- delta:
		default:
			dropped++
		}
	}
	h.mu.RUnlock()

	if dropped > 0 && h.log != nil {
		h.log.WithFields(map[string]interface{}{
			"screening_id": delta.ScreeningID.String(),
			"dropped":      dropped,
		}).Warn("Slow subscribers missed a seat delta")
	}
}

// SubscriberCount reports the current subscribers for a screening.
func (h *Hub) SubscriberCount(screeningID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[screeningID])
}
