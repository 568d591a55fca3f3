package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*bookings.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookings.Booking)}
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, booking *bookings.Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookings.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetBookingByIDWithRelations(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	return f.GetBookingByID(ctx, id)
}

func (f *fakeBookingRepo) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]bookings.Booking, error) {
	return nil, nil
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

func (f *fakeBookingRepo) Cancel(ctx context.Context, id uuid.UUID) error { return nil }

type fakeShowRepo struct {
	claims     map[uuid.UUID][]string
	claimCalls int
}

func newFakeShowRepo() *fakeShowRepo {
	return &fakeShowRepo{claims: make(map[uuid.UUID][]string)}
}

func (f *fakeShowRepo) Create(show *shows.Show) error                        { return nil }
func (f *fakeShowRepo) GetByID(id uuid.UUID) (*shows.Show, error)            { return nil, gorm.ErrRecordNotFound }
func (f *fakeShowRepo) GetByMovieID(movieID uuid.UUID) ([]shows.Show, error) { return nil, nil }
func (f *fakeShowRepo) GetUpcoming(limit int) ([]shows.Show, error)          { return nil, nil }
func (f *fakeShowRepo) Delete(id uuid.UUID) error                            { return nil }

func (f *fakeShowRepo) GetOccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	return f.claims[showID], nil
}

func (f *fakeShowRepo) AreSeatsOccupied(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error) {
	return nil, nil
}

func (f *fakeShowRepo) ClaimSeats(tx *gorm.DB, showID, bookingID uuid.UUID, seats []string) (int64, error) {
	f.claimCalls++
	var claimed int64
	for _, seat := range seats {
		taken := false
		for _, existing := range f.claims[showID] {
			if seat == existing {
				taken = true
				break
			}
		}
		if !taken {
			f.claims[showID] = append(f.claims[showID], seat)
			claimed++
		}
	}
	return claimed, nil
}

type fakeShowService struct {
	invalidated []uuid.UUID
}

func (f *fakeShowService) SetCacheService(cacheService cache.Service) {}
func (f *fakeShowService) CreateShow(req shows.CreateShowRequest) (*shows.ShowResponse, error) {
	return nil, nil
}
func (f *fakeShowService) GetShowByID(id uuid.UUID) (*shows.ShowResponse, error) { return nil, nil }
func (f *fakeShowService) GetShowsByMovie(movieID uuid.UUID) ([]shows.ShowResponse, error) {
	return nil, nil
}
func (f *fakeShowService) GetUpcomingShows(limit int) ([]shows.ShowResponse, error) {
	return nil, nil
}
func (f *fakeShowService) DeleteShow(id uuid.UUID) error { return nil }
func (f *fakeShowService) GetOccupiedSeats(ctx context.Context, showID uuid.UUID) (*shows.OccupiedSeatsResponse, error) {
	return nil, nil
}
func (f *fakeShowService) InvalidateSeatCache(ctx context.Context, showID uuid.UUID) {
	f.invalidated = append(f.invalidated, showID)
}

type fakeUserLookup struct{}

func (f *fakeUserLookup) GetUserByID(ctx context.Context, userID uuid.UUID) (string, string, string, error) {
	return "asha@example.com", "Asha", "Patel", nil
}

type fakeNotifier struct {
	notices []BookingConfirmedNotice
	err     error
}

func (f *fakeNotifier) NotifyBookingConfirmed(ctx context.Context, notice BookingConfirmedNotice) error {
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, notice)
	return nil
}

type confirmFixture struct {
	service     Service
	bookingRepo *fakeBookingRepo
	showRepo    *fakeShowRepo
	showService *fakeShowService
	notifier    *fakeNotifier
	booking     *bookings.Booking
}

func newConfirmFixture(t *testing.T) *confirmFixture {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	showRepo := newFakeShowRepo()
	showService := &fakeShowService{}
	notifier := &fakeNotifier{}

	booking := &bookings.Booking{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ShowID:     uuid.New(),
		Seats:      pq.StringArray{"A1", "A2"},
		Amount:     400,
		BookingRef: "CBK-20260901-ABCDEF",
		Show: shows.Show{
			ShowDateTime: time.Now().Add(24 * time.Hour),
			Movie:        movies.Movie{Title: "Interstellar Odyssey"},
		},
	}
	bookingRepo.bookings[booking.ID] = booking

	return &confirmFixture{
		service:     NewService(bookingRepo, showRepo, showService, &fakeUserLookup{}, notifier, logger.GetDefault()),
		bookingRepo: bookingRepo,
		showRepo:    showRepo,
		showService: showService,
		notifier:    notifier,
		booking:     booking,
	}
}

func confirmationEvent(bookingID uuid.UUID) *WebhookEvent {
	event := &WebhookEvent{
		ID:   "evt_" + uuid.New().String(),
		Type: EventCheckoutSessionCompleted,
	}
	event.Data.Object.SessionID = "cs_test"
	event.Data.Object.Metadata = map[string]string{"booking_id": bookingID.String()}
	return event
}

func TestConfirmPaymentMarksPaidAndClaimsSeats(t *testing.T) {
	f := newConfirmFixture(t)

	if err := f.service.ConfirmPayment(context.Background(), confirmationEvent(f.booking.ID)); err != nil {
		t.Fatalf("ConfirmPayment returned error: %v", err)
	}

	if !f.booking.IsPaid {
		t.Error("booking should be marked paid")
	}
	if got := len(f.showRepo.claims[f.booking.ShowID]); got != 2 {
		t.Errorf("expected 2 seat claims, got %d", got)
	}
	if len(f.showService.invalidated) != 1 {
		t.Error("seat cache should be invalidated after confirmation")
	}
	if len(f.notifier.notices) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.notices))
	}

	notice := f.notifier.notices[0]
	if notice.Email != "asha@example.com" {
		t.Errorf("notice email = %q", notice.Email)
	}
	if notice.MovieTitle != "Interstellar Odyssey" {
		t.Errorf("notice movie title = %q", notice.MovieTitle)
	}
	if notice.Amount != 400 {
		t.Errorf("notice amount = %v", notice.Amount)
	}
}

// At-least-once delivery: the second arrival of the same confirmation must be
// acknowledged without claiming seats or emailing again.
func TestConfirmPaymentDuplicateDeliveryIsNoOp(t *testing.T) {
	f := newConfirmFixture(t)
	event := confirmationEvent(f.booking.ID)

	if err := f.service.ConfirmPayment(context.Background(), event); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := f.service.ConfirmPayment(context.Background(), event); err != nil {
		t.Fatalf("duplicate delivery errored: %v", err)
	}

	if !f.booking.IsPaid {
		t.Error("booking must stay paid")
	}
	if f.showRepo.claimCalls != 1 {
		t.Errorf("seats claimed %d times, want 1", f.showRepo.claimCalls)
	}
	if len(f.notifier.notices) != 1 {
		t.Errorf("notifications sent %d times, want 1", len(f.notifier.notices))
	}
}

func TestConfirmPaymentIgnoresOtherEventTypes(t *testing.T) {
	f := newConfirmFixture(t)
	event := confirmationEvent(f.booking.ID)
	event.Type = "checkout.session.expired"

	if err := f.service.ConfirmPayment(context.Background(), event); err != nil {
		t.Fatalf("ConfirmPayment returned error: %v", err)
	}

	if f.booking.IsPaid {
		t.Error("non-completion events must not mark bookings paid")
	}
	if f.showRepo.claimCalls != 0 {
		t.Error("non-completion events must not claim seats")
	}
}

func TestConfirmPaymentUnknownBookingAcknowledged(t *testing.T) {
	f := newConfirmFixture(t)

	if err := f.service.ConfirmPayment(context.Background(), confirmationEvent(uuid.New())); err != nil {
		t.Fatalf("unknown booking should be acknowledged, got error: %v", err)
	}
	if f.showRepo.claimCalls != 0 {
		t.Error("unknown booking must not claim seats")
	}
}

func TestConfirmPaymentMissingMetadataAcknowledged(t *testing.T) {
	f := newConfirmFixture(t)
	event := confirmationEvent(f.booking.ID)
	event.Data.Object.Metadata = nil

	if err := f.service.ConfirmPayment(context.Background(), event); err != nil {
		t.Fatalf("event without metadata should be acknowledged, got error: %v", err)
	}
	if f.booking.IsPaid {
		t.Error("booking must stay unpaid without correlation metadata")
	}
}

// Notification trouble stays inside the process: the webhook is still
// acknowledged and the booking stays paid.
func TestConfirmPaymentNotifierFailureSwallowed(t *testing.T) {
	f := newConfirmFixture(t)
	f.notifier.err = errors.New("broker unreachable")

	if err := f.service.ConfirmPayment(context.Background(), confirmationEvent(f.booking.ID)); err != nil {
		t.Fatalf("notifier failure must not fail the webhook: %v", err)
	}
	if !f.booking.IsPaid {
		t.Error("booking should stay paid despite notification failure")
	}
}

// When another paid booking already claimed an overlapping seat, the booking
// stays paid (the charge settled) and the shortfall is logged for remediation.
func TestConfirmPaymentSeatOverlapKeepsBookingPaid(t *testing.T) {
	f := newConfirmFixture(t)
	f.showRepo.claims[f.booking.ShowID] = []string{"A1"}

	if err := f.service.ConfirmPayment(context.Background(), confirmationEvent(f.booking.ID)); err != nil {
		t.Fatalf("ConfirmPayment returned error: %v", err)
	}

	if !f.booking.IsPaid {
		t.Error("booking must stay paid when claims partially overlap")
	}
	if got := len(f.showRepo.claims[f.booking.ShowID]); got != 2 {
		t.Errorf("expected 2 total claims (1 pre-existing + 1 new), got %d", got)
	}
}
