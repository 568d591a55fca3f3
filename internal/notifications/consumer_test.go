package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
)

func encodeNotification(t *testing.T, notification *EmailNotification) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := notification.ToJSON()
	if err != nil {
		t.Fatalf("failed to encode notification: %v", err)
	}
	return &sarama.ConsumerMessage{Topic: "notifications", Value: payload}
}

func newDeliveryHandler(email EmailService) *deliveryHandler {
	return &deliveryHandler{
		workerID: 0,
		email:    email,
		attempts: 3,
		backoff:  time.Millisecond,
	}
}

func TestDeliveryHandlerDeliversBookingConfirmation(t *testing.T) {
	email := &recordingEmailService{}
	handler := newDeliveryHandler(email)

	notification := buildBookingConfirmedNotification(testNotice())
	if err := handler.handleRecord(context.Background(), encodeNotification(t, notification)); err != nil {
		t.Fatalf("handleRecord returned error: %v", err)
	}

	if len(email.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(email.sent))
	}
	if email.sent[0].RecipientEmail != "asha@example.com" {
		t.Errorf("recipient = %q", email.sent[0].RecipientEmail)
	}
	if email.sent[0].Status != NotificationStatusSent {
		t.Errorf("status = %q, want %q", email.sent[0].Status, NotificationStatusSent)
	}
}

func TestDeliveryHandlerSkipsUnhandledTypes(t *testing.T) {
	email := &recordingEmailService{}
	handler := newDeliveryHandler(email)

	notification := buildBookingConfirmedNotification(testNotice())
	notification.Type = "PASSWORD_RESET"

	if err := handler.handleRecord(context.Background(), encodeNotification(t, notification)); err != nil {
		t.Fatalf("unhandled types must be skipped, not errored: %v", err)
	}
	if email.calls != 0 {
		t.Errorf("expected no delivery attempts, got %d", email.calls)
	}
}

func TestDeliveryHandlerSkipsExpiredNotifications(t *testing.T) {
	email := &recordingEmailService{}
	handler := newDeliveryHandler(email)

	expired := time.Now().Add(-time.Minute)
	notification := buildBookingConfirmedNotification(testNotice())
	notification.ExpiresAt = &expired

	if err := handler.handleRecord(context.Background(), encodeNotification(t, notification)); err != nil {
		t.Fatalf("expired notifications must be skipped, not errored: %v", err)
	}
	if email.calls != 0 {
		t.Errorf("expected no delivery attempts, got %d", email.calls)
	}
}

func TestDeliveryHandlerRejectsMalformedPayload(t *testing.T) {
	email := &recordingEmailService{}
	handler := newDeliveryHandler(email)

	message := &sarama.ConsumerMessage{Topic: "notifications", Value: []byte("not json")}
	if err := handler.handleRecord(context.Background(), message); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if email.calls != 0 {
		t.Errorf("expected no delivery attempts, got %d", email.calls)
	}
}

// Delivery is bounded: once attempts run out the handler reports the failure
// and the caller drops the message instead of redelivering it forever.
func TestDeliveryHandlerBoundedAttempts(t *testing.T) {
	email := &recordingEmailService{failFor: 10}
	handler := newDeliveryHandler(email)

	notification := buildBookingConfirmedNotification(testNotice())
	err := handler.deliver(context.Background(), notification)
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if email.calls != handler.attempts {
		t.Errorf("expected %d attempts, got %d", handler.attempts, email.calls)
	}
	if notification.Status != NotificationStatusFailed {
		t.Errorf("status = %q, want %q", notification.Status, NotificationStatusFailed)
	}
}

func TestDeliveryHandlerRecoversWithinAttempts(t *testing.T) {
	email := &recordingEmailService{failFor: 2}
	handler := newDeliveryHandler(email)

	notification := buildBookingConfirmedNotification(testNotice())
	if err := handler.deliver(context.Background(), notification); err != nil {
		t.Fatalf("delivery should succeed on the final attempt: %v", err)
	}
	if email.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", email.calls)
	}
}
