package worker

import (
	"context"
	"time"

	"library-seating/internal/usecase"

	"go.uber.org/zap"
)

// ExpirySweeper flips bookings whose time has elapsed back to Free. Store
// errors are never fatal: a seat that fails to be freed stays occupied from
// the resolver's point of view and is retried on the next tick.
type ExpirySweeper struct {
	seats    usecase.SeatService
	notifier *usecase.Notifier
	interval time.Duration
	log      *zap.Logger
}

func NewExpirySweeper(seats usecase.SeatService, notifier *usecase.Notifier, interval time.Duration, log *zap.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Second
	}
	return &ExpirySweeper{
		seats:    seats,
		notifier: notifier,
		interval: interval,
		log:      log.With(zap.String("worker", "expiry_sweeper")),
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *ExpirySweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Expiry sweeper started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			w.SweepOnce(ctx, time.Now())
		}
	}
}

// SweepOnce frees every booking already past its end time at the given
// instant and publishes an expiry event for each freed seat.
func (w *ExpirySweeper) SweepOnce(ctx context.Context, now time.Time) {
	expired, err := w.seats.ExpiredBookings(ctx, now)
	if err != nil {
		w.log.Error("Failed to load expired bookings", zap.Error(err))
		return
	}

	for _, booking := range expired {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.seats.ResetSeat(ctx, booking.SeatID); err != nil {
			// Retried next tick; the seat stays occupied until then.
			w.log.Error("Failed to free expired seat",
				zap.Error(err),
				zap.Int("seat_id", booking.SeatID),
			)
			continue
		}

		w.notifier.Publish(booking.SeatID, booking.Name, booking.EndTime)
		w.log.Info("Booking expired",
			zap.Int("seat_id", booking.SeatID),
			zap.String("name", booking.Name),
			zap.Time("end_time", booking.EndTime),
		)
	}
}
