package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of a payment-confirmation watch.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeConfirmed
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "pending"
	}
}

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 30 * time.Second
)

// Watcher polls a user's booking history until the most recent booking shows
// as paid, covering the gap between the checkout redirect and the webhook
// landing. Payment confirmation is asynchronous, so the paid flag can flip at
// any poll; the watcher reports Confirmed on the first poll that observes it
// and TimedOut once the ceiling elapses without one.
type Watcher struct {
	service  Service
	interval time.Duration
	timeout  time.Duration
}

func NewWatcher(service Service) *Watcher {
	return &Watcher{
		service:  service,
		interval: DefaultPollInterval,
		timeout:  DefaultPollTimeout,
	}
}

func NewWatcherWithTiming(service Service, interval, timeout time.Duration) *Watcher {
	return &Watcher{
		service:  service,
		interval: interval,
		timeout:  timeout,
	}
}

// Wait blocks until the user's latest booking is observed paid, the timeout
// ceiling passes, or the context is cancelled. Poll errors are tolerated; a
// failed poll just waits for the next tick.
func (w *Watcher) Wait(ctx context.Context, userID uuid.UUID) (Outcome, error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	deadline := time.NewTimer(w.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return OutcomePending, ctx.Err()
		case <-deadline.C:
			return OutcomeTimedOut, nil
		case <-ticker.C:
			if w.latestBookingPaid(ctx, userID) {
				return OutcomeConfirmed, nil
			}
		}
	}
}

func (w *Watcher) latestBookingPaid(ctx context.Context, userID uuid.UUID) bool {
	bookings, err := w.service.GetUserBookings(ctx, userID)
	if err != nil || len(bookings) == 0 {
		return false
	}
	// Newest first; only the booking just placed matters.
	return bookings[0].IsPaid
}
