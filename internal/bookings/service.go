package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cinebook/internal/shows"
)

// CheckoutService creates hosted checkout sessions (interface here to avoid a
// circular dependency on the payments package).
type CheckoutService interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (string, error)
}

// CheckoutRequest carries what the provider needs to build a session. The
// booking ID rides along as correlation metadata and comes back on the
// confirmation webhook.
type CheckoutRequest struct {
	BookingID  uuid.UUID
	Amount     float64
	MovieTitle string
	Seats      []string
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	showRepo shows.Repository
	checkout CheckoutService
}

// NewService creates a new booking service instance
func NewService(repo Repository, showRepo shows.Repository, checkout CheckoutService) Service {
	return &service{
		repo:     repo,
		showRepo: showRepo,
		checkout: checkout,
	}
}

// CreateBooking reserves seats and opens a checkout session. Availability is a
// snapshot check only: nothing is held, and the seats are claimed for real
// when the payment confirmation lands.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error) {
	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show id: %w", err)
	}

	show, err := s.showRepo.GetByID(showID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shows.ErrShowNotFound
		}
		return nil, fmt.Errorf("failed to load show: %w", err)
	}

	seats := NormalizeSeatLabels(req.Seats)
	if err := ValidateSeatLabels(seats); err != nil {
		return nil, err
	}

	taken, err := s.showRepo.AreSeatsOccupied(ctx, showID, seats)
	if err != nil {
		return nil, fmt.Errorf("failed to check seat availability: %w", err)
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrSeatUnavailable, taken)
	}

	bookingRef, err := s.generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := &Booking{
		UserID:     userID,
		ShowID:     showID,
		Seats:      pq.StringArray(seats),
		Amount:     ComputeAmount(show.ShowPrice, seats),
		BookingRef: bookingRef,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// The unpaid booking stays in place if the session cannot be created; the
	// user can cancel it or retry. Deleting it here would race the provider.
	checkoutURL, err := s.checkout.CreateSession(ctx, CheckoutRequest{
		BookingID:  booking.ID,
		Amount:     booking.Amount,
		MovieTitle: show.Movie.Title,
		Seats:      seats,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CreateBookingResponse{
		Success:     true,
		BookingID:   booking.ID.String(),
		CheckoutURL: checkoutURL,
	}, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

// GetUserBookings retrieves the user's non-cancelled bookings, newest first.
func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = toBookingResponse(&bookings[i])
	}
	return responses, nil
}

// CancelBooking cancels an unpaid booking. Paid bookings cannot be cancelled
// through this path; the seats are already claimed and the charge settled.
func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		return ErrNotBookingOwner
	}
	if booking.IsPaid {
		return ErrBookingAlreadyPaid
	}
	if booking.IsCancelled {
		return ErrBookingAlreadyCancelled
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

// generateBookingReference generates a unique booking reference
func (s *service) generateBookingReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	// Generate 6 random uppercase letters
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("CBK-%s-%s", timestamp, string(randomPart)), nil
}
