package bookings

import "time"

// booking creation response; shape is fixed for checkout redirect clients
type CreateBookingResponse struct {
	Success     bool   `json:"success"`
	BookingID   string `json:"booking_id"`
	CheckoutURL string `json:"checkout_url"`
}

// one booking in a user's history, with enough show context to render a ticket
type BookingResponse struct {
	ID           string    `json:"id"`
	ShowID       string    `json:"show_id"`
	MovieTitle   string    `json:"movie_title"`
	ShowDateTime time.Time `json:"show_date_time"`
	Seats        []string  `json:"seats"`
	Amount       float64   `json:"amount"`
	IsPaid       bool      `json:"is_paid"`
	BookingRef   string    `json:"booking_ref"`
	CreatedAt    time.Time `json:"created_at"`
}

func toBookingResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID.String(),
		ShowID:       b.ShowID.String(),
		ShowDateTime: b.Show.ShowDateTime,
		Seats:        []string(b.Seats),
		Amount:       b.Amount,
		IsPaid:       b.IsPaid,
		BookingRef:   b.BookingRef,
		CreatedAt:    b.CreatedAt,
	}
	resp.MovieTitle = b.Show.Movie.Title
	return resp
}
