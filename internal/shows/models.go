package shows

import (
	"time"

	"github.com/google/uuid"

	"cinebook/internal/movies"
)

type Show struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID      uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	ShowDateTime time.Time `json:"show_date_time" gorm:"not null"`
	ShowPrice    float64   `json:"show_price" gorm:"not null;check:show_price >= 0"`

	Movie movies.Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SeatClaim marks one seat of one show as sold. Rows are written only by
// payment confirmation; the unique (show_id, seat_label) index makes a claim
// first-writer-wins under concurrent confirmations.
type SeatClaim struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShowID    uuid.UUID `json:"show_id" gorm:"type:uuid;not null"`
	SeatLabel string    `json:"seat_label" gorm:"not null;size:8"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type ShowResponse struct {
	ID           string                `json:"id"`
	MovieID      string                `json:"movie_id"`
	ShowDateTime time.Time             `json:"show_date_time"`
	ShowPrice    float64               `json:"show_price"`
	Movie        *movies.MovieResponse `json:"movie,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type CreateShowRequest struct {
	MovieID      string    `json:"movie_id" binding:"required,uuid"`
	ShowDateTime time.Time `json:"show_date_time" binding:"required"`
	ShowPrice    float64   `json:"show_price" binding:"required,min=0"`
}

type OccupiedSeatsResponse struct {
	ShowID        string   `json:"show_id"`
	OccupiedSeats []string `json:"occupied_seats"`
}

func (s *Show) ToResponse() ShowResponse {
	resp := ShowResponse{
		ID:           s.ID.String(),
		MovieID:      s.MovieID.String(),
		ShowDateTime: s.ShowDateTime,
		ShowPrice:    s.ShowPrice,
		CreatedAt:    s.CreatedAt,
	}
	if s.Movie.ID != uuid.Nil {
		movieResp := s.Movie.ToResponse()
		resp.Movie = &movieResp
	}
	return resp
}

// TableName specifies the table name for GORM
func (Show) TableName() string {
	return "shows"
}

func (SeatClaim) TableName() string {
	return "seat_claims"
}
