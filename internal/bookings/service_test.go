package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/movies"
	"cinebook/internal/shows"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*Booking
	created  []*Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.bookings[booking.ID] = booking
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return f.GetBookingByID(ctx, id)
}

func (f *fakeBookingRepo) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var result []Booking
	for i := len(f.created) - 1; i >= 0; i-- {
		b := f.created[i]
		if b.UserID == userID && !b.IsCancelled {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) MarkPaid(tx *gorm.DB, id uuid.UUID) (int64, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.IsPaid {
		return 0, nil
	}
	booking.IsPaid = true
	return 1, nil
}

func (f *fakeBookingRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	booking, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	booking.Cancel()
	return nil
}

type fakeShowRepo struct {
	shows    map[uuid.UUID]*shows.Show
	occupied map[uuid.UUID][]string
}

func newFakeShowRepo() *fakeShowRepo {
	return &fakeShowRepo{
		shows:    make(map[uuid.UUID]*shows.Show),
		occupied: make(map[uuid.UUID][]string),
	}
}

func (f *fakeShowRepo) Create(show *shows.Show) error {
	f.shows[show.ID] = show
	return nil
}

func (f *fakeShowRepo) GetByID(id uuid.UUID) (*shows.Show, error) {
	show, ok := f.shows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return show, nil
}

func (f *fakeShowRepo) GetByMovieID(movieID uuid.UUID) ([]shows.Show, error) { return nil, nil }
func (f *fakeShowRepo) GetUpcoming(limit int) ([]shows.Show, error)          { return nil, nil }
func (f *fakeShowRepo) Delete(id uuid.UUID) error                            { return nil }

func (f *fakeShowRepo) GetOccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	return f.occupied[showID], nil
}

func (f *fakeShowRepo) AreSeatsOccupied(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error) {
	var taken []string
	for _, seat := range seats {
		for _, claimed := range f.occupied[showID] {
			if seat == claimed {
				taken = append(taken, seat)
			}
		}
	}
	return taken, nil
}

func (f *fakeShowRepo) ClaimSeats(tx *gorm.DB, showID, bookingID uuid.UUID, seats []string) (int64, error) {
	var claimed int64
	for _, seat := range seats {
		alreadyClaimed := false
		for _, existing := range f.occupied[showID] {
			if seat == existing {
				alreadyClaimed = true
				break
			}
		}
		if !alreadyClaimed {
			f.occupied[showID] = append(f.occupied[showID], seat)
			claimed++
		}
	}
	return claimed, nil
}

type fakeCheckout struct {
	requests []CheckoutRequest
	err      error
}

func (f *fakeCheckout) CreateSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return "https://checkout.test/pay?booking_id=" + req.BookingID.String(), nil
}

func seedShow(showRepo *fakeShowRepo, basePrice float64) *shows.Show {
	show := &shows.Show{
		ID:        uuid.New(),
		MovieID:   uuid.New(),
		ShowPrice: basePrice,
		Movie:     movies.Movie{ID: uuid.New(), Title: "Interstellar Odyssey"},
	}
	showRepo.shows[show.ID] = show
	return show
}

func TestCreateBookingOpensCheckoutSession(t *testing.T) {
	repo := newFakeBookingRepo()
	showRepo := newFakeShowRepo()
	checkout := &fakeCheckout{}
	svc := NewService(repo, showRepo, checkout)

	show := seedShow(showRepo, 200)
	userID := uuid.New()

	resp, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		ShowID: show.ID.String(),
		Seats:  []string{"a1", "A2"},
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.CheckoutURL == "" {
		t.Error("expected checkout URL")
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 booking persisted, got %d", len(repo.created))
	}
	booking := repo.created[0]

	// Base price once plus the front-row tier for each of the two seats.
	if booking.Amount != 400 {
		t.Errorf("booking amount = %v, want 400", booking.Amount)
	}
	if booking.IsPaid {
		t.Error("new booking must start unpaid")
	}
	if booking.Seats[0] != "A1" || booking.Seats[1] != "A2" {
		t.Errorf("seats not normalized: %v", booking.Seats)
	}
	if !strings.HasPrefix(booking.BookingRef, "CBK-") {
		t.Errorf("unexpected booking reference format: %q", booking.BookingRef)
	}

	if len(checkout.requests) != 1 {
		t.Fatalf("expected 1 checkout session, got %d", len(checkout.requests))
	}
	if checkout.requests[0].BookingID != booking.ID {
		t.Error("checkout session must carry the booking ID as metadata")
	}
	if checkout.requests[0].Amount != 400 {
		t.Errorf("checkout amount = %v, want 400", checkout.requests[0].Amount)
	}
}

func TestCreateBookingRejectsClaimedSeats(t *testing.T) {
	repo := newFakeBookingRepo()
	showRepo := newFakeShowRepo()
	svc := NewService(repo, showRepo, &fakeCheckout{})

	show := seedShow(showRepo, 200)
	showRepo.occupied[show.ID] = []string{"C5"}

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowID: show.ID.String(),
		Seats:  []string{"C5", "C6"},
	})
	if !errors.Is(err, ErrSeatUnavailable) {
		t.Fatalf("CreateBooking = %v, want ErrSeatUnavailable", err)
	}
	if len(repo.created) != 0 {
		t.Error("no booking should be persisted when seats are taken")
	}
}

func TestCreateBookingShowNotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), newFakeShowRepo(), &fakeCheckout{})

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowID: uuid.New().String(),
		Seats:  []string{"A1"},
	})
	if !errors.Is(err, shows.ErrShowNotFound) {
		t.Fatalf("CreateBooking = %v, want ErrShowNotFound", err)
	}
}

// Availability at reservation time is a snapshot, not a hold: two requests for
// the same seats both get a checkout session, and the webhook that confirms
// first wins the seats.
func TestConcurrentReservationsBothReachCheckout(t *testing.T) {
	repo := newFakeBookingRepo()
	showRepo := newFakeShowRepo()
	checkout := &fakeCheckout{}
	svc := NewService(repo, showRepo, checkout)

	show := seedShow(showRepo, 200)

	first, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowID: show.ID.String(),
		Seats:  []string{"D4", "D5"},
	})
	if err != nil {
		t.Fatalf("first reservation failed: %v", err)
	}

	second, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ShowID: show.ID.String(),
		Seats:  []string{"D4", "D5"},
	})
	if err != nil {
		t.Fatalf("second reservation failed: %v", err)
	}

	if first.CheckoutURL == "" || second.CheckoutURL == "" {
		t.Error("both reservations should receive a checkout URL")
	}
	if len(checkout.requests) != 2 {
		t.Errorf("expected 2 checkout sessions, got %d", len(checkout.requests))
	}
}

func TestCancelBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	showRepo := newFakeShowRepo()
	svc := NewService(repo, showRepo, &fakeCheckout{})

	owner := uuid.New()
	booking := &Booking{ID: uuid.New(), UserID: owner, ShowID: uuid.New()}
	repo.bookings[booking.ID] = booking

	t.Run("owner cancels unpaid booking", func(t *testing.T) {
		if err := svc.CancelBooking(context.Background(), booking.ID, owner); err != nil {
			t.Fatalf("CancelBooking returned error: %v", err)
		}
		if !booking.IsCancelled {
			t.Error("booking should be cancelled")
		}
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		err := svc.CancelBooking(context.Background(), booking.ID, owner)
		if !errors.Is(err, ErrBookingAlreadyCancelled) {
			t.Fatalf("CancelBooking = %v, want ErrBookingAlreadyCancelled", err)
		}
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		other := &Booking{ID: uuid.New(), UserID: owner}
		repo.bookings[other.ID] = other

		err := svc.CancelBooking(context.Background(), other.ID, uuid.New())
		if !errors.Is(err, ErrNotBookingOwner) {
			t.Fatalf("CancelBooking = %v, want ErrNotBookingOwner", err)
		}
	})

	t.Run("paid booking cannot be cancelled", func(t *testing.T) {
		paid := &Booking{ID: uuid.New(), UserID: owner, IsPaid: true}
		repo.bookings[paid.ID] = paid

		err := svc.CancelBooking(context.Background(), paid.ID, owner)
		if !errors.Is(err, ErrBookingAlreadyPaid) {
			t.Fatalf("CancelBooking = %v, want ErrBookingAlreadyPaid", err)
		}
		if paid.IsCancelled {
			t.Error("paid booking must stay uncancelled")
		}
	})
}
