package bookings

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// booking creation payload
type CreateBookingRequest struct {
	ShowID string   `json:"show_id" binding:"required,uuid"`
	Seats  []string `json:"seats" binding:"required,min=1,max=5,dive,seatlabel"`
}

// RegisterValidators attaches the custom seat-label rule to gin's binding
// validator. Must run once before routes are served. The rule checks the
// label after the same normalization the service applies, so "a1" binds and
// "K1" does not.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("seatlabel", func(fl validator.FieldLevel) bool {
			label := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
			return IsValidSeatLabel(label)
		})
	}
}
