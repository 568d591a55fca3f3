package analytics

import (
	"time"
)

// DashboardAnalytics is the admin overview: catalog size, sales, occupancy
// and recent activity in one payload.
type DashboardAnalytics struct {
	Overview       OverviewMetrics    `json:"overview"`
	TopMovies      []MoviePerformance `json:"top_movies"`
	ShowOccupancy  []ShowOccupancy    `json:"show_occupancy"`
	RecentBookings []RecentBooking    `json:"recent_bookings"`
	BookingTrends  []DailyMetric      `json:"booking_trends"`
	RevenueTrends  []DailyMetric      `json:"revenue_trends"`
}

type OverviewMetrics struct {
	TotalMovies      int     `json:"total_movies"`
	TotalShows       int     `json:"total_shows"`
	UpcomingShows    int     `json:"upcoming_shows"`
	TotalBookings    int     `json:"total_bookings"`
	PaidBookings     int     `json:"paid_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalUsers       int     `json:"total_users"`
	CancellationRate float64 `json:"cancellation_rate"`
	AvgOccupancy     float64 `json:"avg_occupancy"`
}

// MoviePerformance ranks a movie by paid bookings and revenue.
type MoviePerformance struct {
	MovieID      string  `json:"movie_id"`
	MovieTitle   string  `json:"movie_title"`
	ShowCount    int     `json:"show_count"`
	BookingCount int     `json:"booking_count"`
	SeatsSold    int     `json:"seats_sold"`
	Revenue      float64 `json:"revenue"`
}

// ShowOccupancy reports claimed seats against grid capacity for one show.
type ShowOccupancy struct {
	ShowID       string    `json:"show_id"`
	MovieTitle   string    `json:"movie_title"`
	ShowDateTime time.Time `json:"show_date_time"`
	SeatsClaimed int       `json:"seats_claimed"`
	Capacity     int       `json:"capacity"`
	Occupancy    float64   `json:"occupancy"`
}

type RecentBooking struct {
	BookingID   string    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	MovieTitle  string    `json:"movie_title"`
	SeatCount   int       `json:"seat_count"`
	Amount      float64   `json:"amount"`
	IsPaid      bool      `json:"is_paid"`
	IsCancelled bool      `json:"is_cancelled"`
	CreatedAt   time.Time `json:"created_at"`
}

type DailyMetric struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Count int     `json:"count,omitempty"`
}
