package bookings

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeBookingService struct {
	polls       atomic.Int64
	paidAfter   int64
	returnEmpty bool
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error) {
	return nil, nil
}

func (f *fakeBookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	return nil, nil
}

func (f *fakeBookingService) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	return nil
}

func (f *fakeBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	poll := f.polls.Add(1)
	if f.returnEmpty {
		return nil, nil
	}
	return []BookingResponse{
		{ID: uuid.New().String(), IsPaid: f.paidAfter > 0 && poll >= f.paidAfter},
	}, nil
}

func TestWatcherConfirmsWhenPaymentLands(t *testing.T) {
	svc := &fakeBookingService{paidAfter: 3}
	watcher := NewWatcherWithTiming(svc, 5*time.Millisecond, time.Second)

	outcome, err := watcher.Wait(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if outcome != OutcomeConfirmed {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeConfirmed)
	}
	if svc.polls.Load() < 3 {
		t.Errorf("expected at least 3 polls, got %d", svc.polls.Load())
	}
}

func TestWatcherTimesOutWithoutConfirmation(t *testing.T) {
	svc := &fakeBookingService{}
	watcher := NewWatcherWithTiming(svc, 5*time.Millisecond, 50*time.Millisecond)

	outcome, err := watcher.Wait(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if outcome != OutcomeTimedOut {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeTimedOut)
	}
}

func TestWatcherToleratesEmptyHistory(t *testing.T) {
	svc := &fakeBookingService{returnEmpty: true}
	watcher := NewWatcherWithTiming(svc, 5*time.Millisecond, 50*time.Millisecond)

	outcome, err := watcher.Wait(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if outcome != OutcomeTimedOut {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeTimedOut)
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	svc := &fakeBookingService{}
	watcher := NewWatcherWithTiming(svc, 5*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := watcher.Wait(ctx, uuid.New())
	if err == nil {
		t.Fatal("expected context error")
	}
	if outcome != OutcomePending {
		t.Errorf("outcome = %v, want %v", outcome, OutcomePending)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomePending, "pending"},
		{OutcomeConfirmed, "confirmed"},
		{OutcomeTimedOut, "timed_out"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
