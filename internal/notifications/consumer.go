package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

type NotificationConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	OffsetOldest      bool

	// Delivery policy per message. Exhaustion drops the notification: email
	// is fire-and-forget and a dead message must not wedge the partition.
	DeliveryAttempts int
	DeliveryBackoff  time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "cinebook-notification-workers",
		Topics:            []string{"notifications"},
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 3 * time.Second,
		OffsetOldest:      false,
		DeliveryAttempts:  4,
		DeliveryBackoff:   time.Second,
	}
}

// KafkaNotificationConsumer drains the notification topic into the email
// service with a consumer-group worker pool.
type KafkaNotificationConsumer struct {
	group  sarama.ConsumerGroup
	config *ConsumerConfig
	email  EmailService

	ctx     context.Context
	cancel  context.CancelFunc
	workers sync.WaitGroup
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (NotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.HeartbeatInterval
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Return.Errors = true
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaNotificationConsumer{
		group:  group,
		config: config,
		email:  emailService,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (knc *KafkaNotificationConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d delivery workers on %v", numWorkers, knc.config.Topics)

	go knc.drainErrors()

	// Stop() must unblock Consume even when the caller's context is still
	// live, so the run context answers to both.
	runCtx, runCancel := context.WithCancel(ctx)
	go func() {
		<-knc.ctx.Done()
		runCancel()
	}()

	for i := 0; i < numWorkers; i++ {
		knc.workers.Add(1)
		go func(workerID int) {
			defer knc.workers.Done()
			knc.consumeLoop(runCtx, workerID)
		}(i)
	}
	return nil
}

// consumeLoop rejoins the group until the context ends. Consume returns on
// every rebalance; that is normal and the loop just re-enters.
func (knc *KafkaNotificationConsumer) consumeLoop(ctx context.Context, workerID int) {
	handler := &deliveryHandler{
		workerID: workerID,
		email:    knc.email,
		attempts: knc.config.DeliveryAttempts,
		backoff:  knc.config.DeliveryBackoff,
	}

	for ctx.Err() == nil && knc.ctx.Err() == nil {
		if err := knc.group.Consume(ctx, knc.config.Topics, handler); err != nil {
			log.Printf("📥 Worker %d: consume error: %v", workerID, err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (knc *KafkaNotificationConsumer) drainErrors() {
	for err := range knc.group.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (knc *KafkaNotificationConsumer) Stop() error {
	knc.cancel()
	knc.workers.Wait()

	if err := knc.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	log.Println("📥 Notification consumer stopped")
	return nil
}

func (knc *KafkaNotificationConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-knc.ctx.Done():
		return fmt.Errorf("consumer is stopped")
	default:
	}
	if knc.email == nil {
		return fmt.Errorf("email service not configured")
	}
	return nil
}

// deliveryHandler turns claimed messages into sent emails. Every message is
// marked whether delivery worked or not; exhausted deliveries are logged and
// dropped rather than redelivered forever.
type deliveryHandler struct {
	workerID int
	email    EmailService
	attempts int
	backoff  time.Duration
}

func (h *deliveryHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *deliveryHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *deliveryHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.handleRecord(session.Context(), message); err != nil {
			log.Printf("📥 Worker %d: dropping notification at %s/%d offset %d: %v",
				h.workerID, message.Topic, message.Partition, message.Offset, err)
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *deliveryHandler) handleRecord(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification EmailNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	// Only booking confirmations ride this topic today; anything else is a
	// producer from a different deployment generation.
	if notification.Type != NotificationTypeBookingConfirmed {
		log.Printf("📥 Worker %d: skipping unhandled notification type %q", h.workerID, notification.Type)
		return nil
	}

	if notification.IsExpired() {
		log.Printf("📥 Worker %d: notification %s expired before delivery", h.workerID, notification.ID)
		return nil
	}

	return h.deliver(ctx, &notification)
}

func (h *deliveryHandler) deliver(ctx context.Context, notification *EmailNotification) error {
	var lastErr error
	for attempt := 1; attempt <= h.attempts; attempt++ {
		notification.Status = NotificationStatusSending
		lastErr = h.email.SendNotification(ctx, notification)
		if lastErr == nil {
			notification.MarkSent()
			log.Printf("📧 Worker %d: delivered %s to %s", h.workerID, notification.ID, notification.RecipientEmail)
			return nil
		}

		notification.MarkFailed(lastErr)
		if attempt < h.attempts {
			// Doubling backoff between attempts, starting from the base.
			select {
			case <-time.After(h.backoff * time.Duration(1<<(attempt-1))):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("delivery failed after %d attempts: %w", h.attempts, lastErr)
}
