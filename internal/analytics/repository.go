package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/bookings"
)

// gridCapacity is the fixed seat count per auditorium.
const gridCapacity = (bookings.LastRow - bookings.FirstRow + 1) * (bookings.LastPosition - bookings.FirstPosition + 1)

type Repository interface {
	GetDashboardAnalytics() (*DashboardAnalytics, error)
	GetOverviewMetrics() (*OverviewMetrics, error)
	GetTopMovies(limit int) ([]MoviePerformance, error)
	GetShowOccupancy(limit int) ([]ShowOccupancy, error)
	GetShowOccupancyByID(showID uuid.UUID) (*ShowOccupancy, error)
	GetRecentBookings(limit int) ([]RecentBooking, error)
	GetDailyBookingStats(days int) ([]DailyMetric, []DailyMetric, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetDashboardAnalytics() (*DashboardAnalytics, error) {
	overview, err := r.GetOverviewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get overview metrics: %w", err)
	}

	topMovies, err := r.GetTopMovies(5)
	if err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	occupancy, err := r.GetShowOccupancy(10)
	if err != nil {
		return nil, fmt.Errorf("failed to get show occupancy: %w", err)
	}

	recentBookings, err := r.GetRecentBookings(20)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	bookingTrends, revenueTrends, err := r.GetDailyBookingStats(30)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	return &DashboardAnalytics{
		Overview:       *overview,
		TopMovies:      topMovies,
		ShowOccupancy:  occupancy,
		RecentBookings: recentBookings,
		BookingTrends:  bookingTrends,
		RevenueTrends:  revenueTrends,
	}, nil
}

func (r *repository) GetOverviewMetrics() (*OverviewMetrics, error) {
	var metrics OverviewMetrics

	var totalMovies int64
	if err := r.db.Table("movies").Count(&totalMovies).Error; err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}
	metrics.TotalMovies = int(totalMovies)

	var totalShows int64
	if err := r.db.Table("shows").Count(&totalShows).Error; err != nil {
		return nil, fmt.Errorf("failed to count shows: %w", err)
	}
	metrics.TotalShows = int(totalShows)

	var upcomingShows int64
	if err := r.db.Table("shows").
		Where("show_date_time > ?", time.Now()).
		Count(&upcomingShows).Error; err != nil {
		return nil, fmt.Errorf("failed to count upcoming shows: %w", err)
	}
	metrics.UpcomingShows = int(upcomingShows)

	var totalBookings int64
	if err := r.db.Table("bookings").Count(&totalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	metrics.TotalBookings = int(totalBookings)

	var paidBookings int64
	if err := r.db.Table("bookings").
		Where("is_paid = ? AND is_cancelled = ?", true, false).
		Count(&paidBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count paid bookings: %w", err)
	}
	metrics.PaidBookings = int(paidBookings)

	var totalRevenue *float64
	if err := r.db.Table("bookings").
		Select("SUM(amount)").
		Where("is_paid = ? AND is_cancelled = ?", true, false).
		Scan(&totalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if totalRevenue != nil {
		metrics.TotalRevenue = *totalRevenue
	}

	var totalUsers int64
	if err := r.db.Table("users").Count(&totalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	metrics.TotalUsers = int(totalUsers)

	var cancelledBookings int64
	if err := r.db.Table("bookings").
		Where("is_cancelled = ?", true).
		Count(&cancelledBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count cancelled bookings: %w", err)
	}
	if totalBookings > 0 {
		metrics.CancellationRate = float64(cancelledBookings) / float64(totalBookings) * 100
	}

	var totalClaims int64
	if err := r.db.Table("seat_claims").Count(&totalClaims).Error; err != nil {
		return nil, fmt.Errorf("failed to count seat claims: %w", err)
	}
	if totalShows > 0 {
		metrics.AvgOccupancy = float64(totalClaims) / float64(totalShows*gridCapacity) * 100
	}

	return &metrics, nil
}

func (r *repository) GetTopMovies(limit int) ([]MoviePerformance, error) {
	var results []MoviePerformance

	// Correlated subqueries instead of joins: joining shows, bookings and
	// seat_claims together multiplies rows and inflates the sums.
	err := r.db.Raw(`
		SELECT m.id AS movie_id,
			m.title AS movie_title,
			(SELECT COUNT(*) FROM shows s WHERE s.movie_id = m.id) AS show_count,
			(SELECT COUNT(*) FROM bookings b
				JOIN shows s ON s.id = b.show_id
				WHERE s.movie_id = m.id AND b.is_paid = true AND b.is_cancelled = false) AS booking_count,
			(SELECT COUNT(*) FROM seat_claims sc
				JOIN shows s ON s.id = sc.show_id
				WHERE s.movie_id = m.id) AS seats_sold,
			COALESCE((SELECT SUM(b.amount) FROM bookings b
				JOIN shows s ON s.id = b.show_id
				WHERE s.movie_id = m.id AND b.is_paid = true AND b.is_cancelled = false), 0) AS revenue
		FROM movies m
		ORDER BY revenue DESC, booking_count DESC
		LIMIT ?`, limit).
		Scan(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	return results, nil
}

func (r *repository) GetShowOccupancy(limit int) ([]ShowOccupancy, error) {
	var results []ShowOccupancy

	err := r.db.Table("shows s").
		Select(`s.id as show_id,
			m.title as movie_title,
			s.show_date_time,
			COUNT(sc.id) as seats_claimed`).
		Joins("JOIN movies m ON m.id = s.movie_id").
		Joins("LEFT JOIN seat_claims sc ON sc.show_id = s.id").
		Where("s.show_date_time > ?", time.Now()).
		Group("s.id, m.title, s.show_date_time").
		Order("s.show_date_time ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get show occupancy: %w", err)
	}

	for i := range results {
		results[i].Capacity = gridCapacity
		results[i].Occupancy = float64(results[i].SeatsClaimed) / float64(gridCapacity) * 100
	}

	return results, nil
}

func (r *repository) GetShowOccupancyByID(showID uuid.UUID) (*ShowOccupancy, error) {
	var result ShowOccupancy

	err := r.db.Table("shows s").
		Select(`s.id as show_id,
			m.title as movie_title,
			s.show_date_time,
			COUNT(sc.id) as seats_claimed`).
		Joins("JOIN movies m ON m.id = s.movie_id").
		Joins("LEFT JOIN seat_claims sc ON sc.show_id = s.id").
		Where("s.id = ?", showID).
		Group("s.id, m.title, s.show_date_time").
		Scan(&result).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get show occupancy: %w", err)
	}

	if result.ShowID == "" {
		return nil, gorm.ErrRecordNotFound
	}

	result.Capacity = gridCapacity
	result.Occupancy = float64(result.SeatsClaimed) / float64(gridCapacity) * 100

	return &result, nil
}

func (r *repository) GetRecentBookings(limit int) ([]RecentBooking, error) {
	var results []RecentBooking

	err := r.db.Table("bookings b").
		Select(`b.id as booking_id,
			b.booking_ref,
			m.title as movie_title,
			array_length(b.seats, 1) as seat_count,
			b.amount,
			b.is_paid,
			b.is_cancelled,
			b.created_at`).
		Joins("JOIN shows s ON s.id = b.show_id").
		Joins("JOIN movies m ON m.id = s.movie_id").
		Order("b.created_at DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	return results, nil
}

// GetDailyBookingStats returns booking-count and revenue series for the last
// N days, one point per day.
func (r *repository) GetDailyBookingStats(days int) ([]DailyMetric, []DailyMetric, error) {
	type dailyRow struct {
		Date     time.Time
		Bookings int
		Revenue  float64
	}

	var rows []dailyRow
	since := time.Now().AddDate(0, 0, -days)

	err := r.db.Table("bookings").
		Select(`DATE(created_at) as date,
			COUNT(*) as bookings,
			COALESCE(SUM(amount) FILTER (WHERE is_paid = true AND is_cancelled = false), 0) as revenue`).
		Where("created_at > ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	bookingTrends := make([]DailyMetric, 0, len(rows))
	revenueTrends := make([]DailyMetric, 0, len(rows))
	for _, row := range rows {
		date := row.Date.Format("2006-01-02")
		bookingTrends = append(bookingTrends, DailyMetric{
			Date:  date,
			Value: float64(row.Bookings),
			Count: row.Bookings,
		})
		revenueTrends = append(revenueTrends, DailyMetric{
			Date:  date,
			Value: row.Revenue,
			Count: row.Bookings,
		})
	}

	return bookingTrends, revenueTrends, nil
}
