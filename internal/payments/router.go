package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes registers the webhook endpoint. Authentication is the
// signature on the payload, not a JWT; the provider is not a logged-in user.
func SetupPaymentRoutes(router *gin.RouterGroup, controller *Controller) {
	payments := router.Group("/payments")
	{
		payments.POST("/webhook", controller.HandleWebhook)
	}
}
