package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shows"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, shows.ErrShowNotFound):
			status = http.StatusNotFound
		case errors.Is(err, ErrSeatUnavailable):
			status = http.StatusConflict
		case errors.Is(err, ErrInvalidSeatLabel),
			errors.Is(err, ErrTooManySeats),
			errors.Is(err, ErrDuplicateSeat),
			errors.Is(err, ErrNoSeats):
			status = http.StatusBadRequest
		default:
			status = http.StatusBadGateway
		}
		ctx.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid booking ID"})
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	roleInterface, _ := ctx.Get("user_role")
	role, _ := roleInterface.(string)

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, userID, role == "ADMIN")
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Booking not found"})
		case errors.Is(err, ErrNotBookingOwner):
			ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to get booking"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// GetUserBookings handles POST /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get user bookings",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid booking ID"})
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	err = c.service.CancelBooking(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Booking not found"})
		case errors.Is(err, ErrNotBookingOwner):
			ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
		case errors.Is(err, ErrBookingAlreadyPaid):
			ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": "Paid bookings cannot be cancelled"})
		case errors.Is(err, ErrBookingAlreadyCancelled):
			ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": "Booking is already cancelled"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to cancel booking"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
	})
}

// currentUserID pulls the authenticated user out of the JWT context; writes
// the error response itself when the context is malformed.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return uuid.Nil, false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Invalid user ID format"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return uuid.Nil, false
	}

	return userID, true
}
