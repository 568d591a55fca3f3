package bookings

import (
	"errors"
	"testing"
)

func TestSeatTierPrice(t *testing.T) {
	tests := []struct {
		seat string
		want float64
	}{
		{"A1", 100},
		{"B9", 100},
		{"C1", 150},
		{"F5", 150},
		{"G1", 250},
		{"J9", 250},
	}

	for _, tt := range tests {
		if got := SeatTierPrice(tt.seat); got != tt.want {
			t.Errorf("SeatTierPrice(%q) = %v, want %v", tt.seat, got, tt.want)
		}
	}
}

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name      string
		basePrice float64
		seats     []string
		want      float64
	}{
		{
			name:      "base price charged once plus front tier per seat",
			basePrice: 200,
			seats:     []string{"A1", "A2"},
			want:      400,
		},
		{
			name:      "single back row seat",
			basePrice: 150,
			seats:     []string{"J9"},
			want:      400,
		},
		{
			name:      "mixed tiers",
			basePrice: 100,
			seats:     []string{"A1", "C1", "G1"},
			want:      600,
		},
		{
			name:      "no seats leaves only the base price",
			basePrice: 200,
			seats:     nil,
			want:      200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeAmount(tt.basePrice, tt.seats); got != tt.want {
				t.Errorf("ComputeAmount(%v, %v) = %v, want %v", tt.basePrice, tt.seats, got, tt.want)
			}
		})
	}
}

func TestNormalizeSeatLabels(t *testing.T) {
	got := NormalizeSeatLabels([]string{" a1", "b9 ", "C5"})
	want := []string{"A1", "B9", "C5"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeSeatLabels returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeSeatLabels[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateSeatLabels(t *testing.T) {
	tests := []struct {
		name    string
		seats   []string
		wantErr error
	}{
		{"valid selection", []string{"A1", "J9", "C5"}, nil},
		{"empty selection", []string{}, ErrNoSeats},
		{"too many seats", []string{"A1", "A2", "A3", "A4", "A5", "A6"}, ErrTooManySeats},
		{"duplicate seat", []string{"A1", "A1"}, ErrDuplicateSeat},
		{"row out of range", []string{"K1"}, ErrInvalidSeatLabel},
		{"position zero", []string{"A0"}, ErrInvalidSeatLabel},
		{"position ten", []string{"A10"}, ErrInvalidSeatLabel},
		{"garbage label", []string{"banana"}, ErrInvalidSeatLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeatLabels(tt.seats)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateSeatLabels(%v) = %v, want nil", tt.seats, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSeatLabels(%v) = %v, want %v", tt.seats, err, tt.wantErr)
			}
		})
	}
}
