package bookings

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// The binding rule must accept whatever the service would normalize into a
// valid label, so a lowercase "a1" does not 400 before the service sees it.
func TestSeatLabelBindingMatchesNormalization(t *testing.T) {
	RegisterValidators()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("gin binding validator engine unavailable")
	}

	tests := []struct {
		name    string
		seats   []string
		wantErr bool
	}{
		{"uppercase labels", []string{"A1", "J9"}, false},
		{"lowercase labels", []string{"a1", "j9"}, false},
		{"padded label", []string{" c5 "}, false},
		{"row out of range", []string{"K1"}, true},
		{"position out of range", []string{"A0"}, true},
		{"garbage label", []string{"banana"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateBookingRequest{ShowID: uuid.NewString(), Seats: tt.seats}
			err := v.Struct(req)
			if tt.wantErr && err == nil {
				t.Errorf("seats %v bound without error", tt.seats)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("seats %v rejected at binding: %v", tt.seats, err)
			}
		})
	}
}
