package payments

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

// Webhook bodies are small JSON envelopes; anything larger is not ours.
const maxWebhookBody = 1 << 20

type Controller struct {
	service Service
	config  *config.Config
	log     *logger.Logger
}

func NewController(service Service, cfg *config.Config, log *logger.Logger) *Controller {
	return &Controller{
		service: service,
		config:  cfg,
		log:     log,
	}
}

// HandleWebhook handles POST /api/v1/payments/webhook. Signature verification
// runs against the raw body before any parsing; a 400 here never mutates
// state, and a 500 tells the provider to redeliver.
func (c *Controller) HandleWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unable to read request body"})
		return
	}

	header := ctx.GetHeader(SignatureHeader)
	if err := VerifySignature(
		[]byte(c.config.Payment.WebhookSecret),
		header,
		body,
		c.config.Payment.SignatureTolerance,
		time.Now(),
	); err != nil {
		c.log.LogWebhookRejected(ctx.Request.Context(), err.Error(), ctx.ClientIP())
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid signature"})
		return
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Malformed event payload"})
		return
	}

	if err := c.service.ConfirmPayment(ctx.Request.Context(), &event); err != nil {
		c.log.ErrorWithContext(ctx.Request.Context(), "Payment confirmation failed", err, map[string]interface{}{
			"event_id": event.ID,
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process event"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
