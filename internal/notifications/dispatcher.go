package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cinebook/internal/payments"
	"cinebook/pkg/logger"
)

const (
	inlineAttempts = 2
	inlineBackoff  = 500 * time.Millisecond
)

// Dispatcher turns a confirmed booking into an email notification. The
// preferred path is the Kafka topic; when the broker is unavailable it falls
// back to delivering inline so confirmations still go out.
type Dispatcher struct {
	producer NotificationProducer
	email    EmailService
	log      *logger.Logger
}

func NewDispatcher(producer NotificationProducer, email EmailService, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		producer: producer,
		email:    email,
		log:      log,
	}
}

// NewInlineDispatcher skips the queue entirely. Used when the broker is not
// configured at all.
func NewInlineDispatcher(email EmailService, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		email: email,
		log:   log,
	}
}

func (d *Dispatcher) NotifyBookingConfirmed(ctx context.Context, notice payments.BookingConfirmedNotice) error {
	notification := buildBookingConfirmedNotification(notice)

	if d.producer != nil {
		err := d.producer.PublishNotification(ctx, notification)
		if err == nil {
			return nil
		}
		d.log.ErrorWithContext(ctx, "Notification publish failed, delivering inline", err, map[string]interface{}{
			"booking_id": notice.BookingID,
		})
	}

	return d.deliverInline(ctx, notification)
}

// deliverInline makes a bounded number of direct delivery attempts. There is
// no queue behind this path to absorb retries, so attempts stay small and the
// final error goes back to the caller.
func (d *Dispatcher) deliverInline(ctx context.Context, notification *EmailNotification) error {
	var lastErr error
	for attempt := 1; attempt <= inlineAttempts; attempt++ {
		notification.Status = NotificationStatusSending
		lastErr = d.email.SendNotification(ctx, notification)
		if lastErr == nil {
			notification.MarkSent()
			return nil
		}

		notification.MarkFailed(lastErr)
		if attempt < inlineAttempts {
			select {
			case <-time.After(inlineBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("inline delivery failed after %d attempts: %w", inlineAttempts, lastErr)
}

func buildBookingConfirmedNotification(notice payments.BookingConfirmedNotice) *EmailNotification {
	builder := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithRecipient(notice.Email, notice.FirstName).
		WithSubject(fmt.Sprintf("✅ Booking Confirmed for %s", notice.MovieTitle)).
		WithTemplateData(map[string]interface{}{
			"movie_title":   notice.MovieTitle,
			"show_datetime": notice.ShowDateTime.Format("Mon, 02 Jan 2006 at 3:04 PM"),
			"seats":         strings.Join(notice.Seats, ", "),
			"booking_ref":   notice.BookingRef,
			"amount":        fmt.Sprintf("%.2f", notice.Amount),
		})

	if bookingID, err := uuid.Parse(notice.BookingID); err == nil {
		builder.WithBookingContext(bookingID)
	}
	if showID, err := uuid.Parse(notice.ShowID); err == nil {
		builder.WithShowContext(showID)
	}

	return builder.Build()
}
