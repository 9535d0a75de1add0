package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpiryEvent is emitted when the sweeper frees a seat whose time ran out.
// The presentation layer polls these to surface "time over" alerts.
type ExpiryEvent struct {
	ID        uuid.UUID `json:"id"`
	SeatID    int       `json:"seat_id"`
	Name      string    `json:"name"`
	ExpiredAt time.Time `json:"expired_at"`
}

// Notifier keeps a bounded in-memory feed of expiry events. The buffer is
// derived, disposable state; the CSV store stays the sole ground truth for
// occupancy.
type Notifier struct {
	mu     sync.Mutex
	events []ExpiryEvent
	limit  int
	log    *zap.Logger
}

func NewNotifier(limit int, log *zap.Logger) *Notifier {
	if limit <= 0 {
		limit = 64
	}
	return &Notifier{
		limit: limit,
		log:   log.With(zap.String("service", "notifier")),
	}
}

func (n *Notifier) Publish(seatID int, name string, expiredAt time.Time) ExpiryEvent {
	event := ExpiryEvent{
		ID:        uuid.New(),
		SeatID:    seatID,
		Name:      name,
		ExpiredAt: expiredAt,
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
	if len(n.events) > n.limit {
		n.events = append([]ExpiryEvent(nil), n.events[len(n.events)-n.limit:]...)
	}

	n.log.Info("Expiry event published",
		zap.Int("seat_id", seatID),
		zap.String("name", name),
	)
	return event
}

// Since returns up to limit events published after the event with the given
// id. An unknown or zero id returns the newest events, so a client that
// missed the buffer window simply resynchronizes.
func (n *Notifier) Since(afterID uuid.UUID, limit int) []ExpiryEvent {
	n.mu.Lock()
	defer n.mu.Unlock()

	start := 0
	if afterID != uuid.Nil {
		for i, event := range n.events {
			if event.ID == afterID {
				start = i + 1
				break
			}
		}
	}

	events := n.events[start:]
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	out := make([]ExpiryEvent, len(events))
	copy(out, events)
	return out
}
