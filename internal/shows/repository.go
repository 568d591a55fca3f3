package shows

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(show *Show) error
	GetByID(id uuid.UUID) (*Show, error)
	GetByMovieID(movieID uuid.UUID) ([]Show, error)
	GetUpcoming(limit int) ([]Show, error)
	Delete(id uuid.UUID) error

	// Seat occupancy
	GetOccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error)
	AreSeatsOccupied(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error)
	ClaimSeats(tx *gorm.DB, showID, bookingID uuid.UUID, seats []string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(show *Show) error {
	return r.db.Create(show).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.Preload("Movie").Where("id = ?", id).First(&show).Error
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func (r *repository) GetByMovieID(movieID uuid.UUID) ([]Show, error) {
	var shows []Show
	err := r.db.Where("movie_id = ? AND show_date_time > ?", movieID, time.Now()).
		Order("show_date_time ASC").
		Find(&shows).Error
	return shows, err
}

func (r *repository) GetUpcoming(limit int) ([]Show, error) {
	var shows []Show
	err := r.db.Preload("Movie").
		Where("show_date_time > ?", time.Now()).
		Order("show_date_time ASC").
		Limit(limit).
		Find(&shows).Error
	return shows, err
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Show{}).Error
}

func (r *repository) GetOccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	var seats []string
	err := r.db.WithContext(ctx).Model(&SeatClaim{}).
		Where("show_id = ?", showID).
		Order("seat_label ASC").
		Pluck("seat_label", &seats).Error
	return seats, err
}

// AreSeatsOccupied returns the subset of the given labels that already have a
// claim. This is a snapshot check; nothing is reserved by calling it.
func (r *repository) AreSeatsOccupied(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error) {
	var taken []string
	err := r.db.WithContext(ctx).Model(&SeatClaim{}).
		Where("show_id = ? AND seat_label IN ?", showID, seats).
		Pluck("seat_label", &taken).Error
	return taken, err
}

// ClaimSeats inserts claim rows for the booking inside the caller's
// transaction. Conflicting labels are silently skipped; the returned count is
// the number of rows actually inserted.
func (r *repository) ClaimSeats(tx *gorm.DB, showID, bookingID uuid.UUID, seats []string) (int64, error) {
	claims := make([]SeatClaim, len(seats))
	for i, seat := range seats {
		claims[i] = SeatClaim{
			ShowID:    showID,
			SeatLabel: seat,
			BookingID: bookingID,
		}
	}

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "show_id"}, {Name: "seat_label"}},
		DoNothing: true,
	}).Create(&claims)

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
