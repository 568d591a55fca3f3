package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cinebook/internal/shows"
)

// Booking records a reservation for a set of seats at one show. A booking is
// created unpaid; is_paid flips exactly once when the payment provider
// confirms the charge, and never flips back.
type Booking struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ShowID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"show_id"`
	Seats       pq.StringArray `gorm:"type:text[];not null" json:"seats"`
	Amount      float64        `gorm:"not null" json:"amount"`
	IsPaid      bool           `gorm:"not null;default:false" json:"is_paid"`
	IsCancelled bool           `gorm:"not null;default:false" json:"is_cancelled"`
	BookingRef  string         `gorm:"unique;not null" json:"booking_ref"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`

	// Relationships
	Show shows.Show `json:"-" gorm:"foreignKey:ShowID;constraint:OnDelete:RESTRICT;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) Cancel() {
	b.IsCancelled = true
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}
