package bookings

import (
	"fmt"
	"strconv"
	"strings"
)

// Auditorium grid: rows A-J, positions 1-9.
const (
	FirstRow         = 'A'
	LastRow          = 'J'
	FirstPosition    = 1
	LastPosition     = 9
	MaxSeatsPerOrder = 5
)

// Per-seat surcharge by row band, added on top of the show's base price.
const (
	tierFrontPrice  = 100.0 // rows A-B
	tierMiddlePrice = 150.0 // rows C-F
	tierBackPrice   = 250.0 // rows G-J
)

// SeatTierPrice returns the per-seat surcharge for a valid seat label.
func SeatTierPrice(label string) float64 {
	switch row := label[0]; {
	case row <= 'B':
		return tierFrontPrice
	case row <= 'F':
		return tierMiddlePrice
	default:
		return tierBackPrice
	}
}

// ComputeAmount prices a booking: the show's base price plus the row-tier
// surcharge for every requested seat.
func ComputeAmount(basePrice float64, seats []string) float64 {
	amount := basePrice
	for _, seat := range seats {
		amount += SeatTierPrice(seat)
	}
	return amount
}

// NormalizeSeatLabels uppercases and trims the requested labels.
func NormalizeSeatLabels(seats []string) []string {
	normalized := make([]string, len(seats))
	for i, seat := range seats {
		normalized[i] = strings.ToUpper(strings.TrimSpace(seat))
	}
	return normalized
}

// ValidateSeatLabels checks count limits, label syntax against the grid, and
// duplicates. Labels must already be normalized.
func ValidateSeatLabels(seats []string) error {
	if len(seats) == 0 {
		return ErrNoSeats
	}
	if len(seats) > MaxSeatsPerOrder {
		return fmt.Errorf("%w: requested %d, maximum %d", ErrTooManySeats, len(seats), MaxSeatsPerOrder)
	}

	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if !IsValidSeatLabel(seat) {
			return fmt.Errorf("%w: %q", ErrInvalidSeatLabel, seat)
		}
		if seen[seat] {
			return fmt.Errorf("%w: %q", ErrDuplicateSeat, seat)
		}
		seen[seat] = true
	}
	return nil
}

// IsValidSeatLabel reports whether a label names a seat on the grid, e.g. "C7".
func IsValidSeatLabel(label string) bool {
	if len(label) != 2 {
		return false
	}
	row := label[0]
	if row < FirstRow || row > LastRow {
		return false
	}
	pos, err := strconv.Atoi(label[1:])
	if err != nil {
		return false
	}
	return pos >= FirstPosition && pos <= LastPosition
}
