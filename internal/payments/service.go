package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/bookings"
	"cinebook/internal/shows"
	"cinebook/pkg/logger"
)

// UserLookup resolves the notification recipient (interface here to avoid a
// circular dependency on the auth package).
type UserLookup interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error)
}

// Notifier hands a confirmed booking to the notification pipeline. Failures
// are the caller's to contain; they must never reach the payment provider.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, notice BookingConfirmedNotice) error
}

// BookingConfirmedNotice carries everything the confirmation email needs.
type BookingConfirmedNotice struct {
	BookingID    string
	BookingRef   string
	ShowID       string
	Email        string
	FirstName    string
	MovieTitle   string
	ShowDateTime time.Time
	Seats        []string
	Amount       float64
}

// Service applies a payment confirmation exactly once.
type Service interface {
	ConfirmPayment(ctx context.Context, event *WebhookEvent) error
}

type service struct {
	bookingRepo bookings.Repository
	showRepo    shows.Repository
	showService shows.Service
	userLookup  UserLookup
	notifier    Notifier
	log         *logger.Logger
}

func NewService(bookingRepo bookings.Repository, showRepo shows.Repository, showService shows.Service, userLookup UserLookup, notifier Notifier, log *logger.Logger) Service {
	return &service{
		bookingRepo: bookingRepo,
		showRepo:    showRepo,
		showService: showService,
		userLookup:  userLookup,
		notifier:    notifier,
		log:         log,
	}
}

// ConfirmPayment processes one webhook delivery. The provider redelivers on
// non-2xx, so every return path is deliberate: nil acknowledges and stops
// redelivery, an error asks for another attempt.
func (s *service) ConfirmPayment(ctx context.Context, event *WebhookEvent) error {
	// Unhandled event types are acknowledged, not errored.
	if event.Type != EventCheckoutSessionCompleted {
		return nil
	}

	bookingID, ok := event.BookingID()
	if !ok {
		// Nothing to correlate; retrying would not help.
		s.log.InfoWithContext(ctx, "Webhook without booking metadata acknowledged", map[string]interface{}{
			"event_id": event.ID,
		})
		return nil
	}

	booking, err := s.bookingRepo.GetBookingByIDWithRelations(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			s.log.InfoWithContext(ctx, "Webhook for unknown booking acknowledged", map[string]interface{}{
				"event_id":   event.ID,
				"booking_id": bookingID.String(),
			})
			return nil
		}
		return fmt.Errorf("failed to load booking: %w", err)
	}

	// Redelivery of an already-applied confirmation: acknowledge, skip all
	// side effects so at-least-once delivery cannot double-claim or re-email.
	if booking.IsPaid {
		return nil
	}

	var applied bool
	var claimed int64
	err = s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.bookingRepo.MarkPaid(tx, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to mark booking paid: %w", err)
		}
		if rows == 0 {
			// A concurrent delivery won the guarded update; nothing to do.
			return nil
		}
		applied = true

		claimed, err = s.showRepo.ClaimSeats(tx, booking.ShowID, booking.ID, []string(booking.Seats))
		if err != nil {
			return fmt.Errorf("failed to claim seats: %w", err)
		}
		return nil
	})
	if err != nil {
		// Surface the failure so the provider redelivers.
		return err
	}

	if !applied {
		return nil
	}

	if claimed < int64(len(booking.Seats)) {
		// Another paid booking claimed an overlapping seat first. The charge
		// already settled, so the booking stays paid; flag for remediation.
		s.log.ErrorWithContext(ctx, "Seat claim overlap on paid booking",
			fmt.Errorf("claimed %d of %d seats", claimed, len(booking.Seats)),
			map[string]interface{}{
				"booking_id": booking.ID.String(),
				"show_id":    booking.ShowID.String(),
			})
	}

	s.log.LogPaymentConfirmed(ctx, booking.ID.String(), booking.ShowID.String(), []string(booking.Seats))
	s.showService.InvalidateSeatCache(ctx, booking.ShowID)

	// Notification is fire-and-forget: log and swallow so delivery trouble
	// never turns into webhook redelivery.
	if err := s.notify(ctx, booking); err != nil {
		s.log.LogNotificationFailure(ctx, booking.ID.String(), err)
	}

	return nil
}

func (s *service) notify(ctx context.Context, booking *bookings.Booking) error {
	email, firstName, _, err := s.userLookup.GetUserByID(ctx, booking.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}

	return s.notifier.NotifyBookingConfirmed(ctx, BookingConfirmedNotice{
		BookingID:    booking.ID.String(),
		BookingRef:   booking.BookingRef,
		ShowID:       booking.ShowID.String(),
		Email:        email,
		FirstName:    firstName,
		MovieTitle:   booking.Show.Movie.Title,
		ShowDateTime: booking.Show.ShowDateTime,
		Seats:        []string(booking.Seats),
		Amount:       booking.Amount,
	})
}
