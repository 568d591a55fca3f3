package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A seat can be claimed at most once per show. Payment confirmation inserts
	// claims with ON CONFLICT DO NOTHING, so racing confirmations cannot
	// double-occupy a seat.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_show
		ON seat_claims (show_id, seat_label);
	`).Error
	if err != nil {
		return err
	}

	// Index for occupied-seat lookups during reservation validation
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_claims_show_id
		ON seat_claims (show_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for the user-bookings poll query (newest first)
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
