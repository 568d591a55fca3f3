package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the CineBook application.
// Pattern: cinebook:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour // movie catalog entries
	TTL_STATIC_MEDIUM = 6 * time.Hour  // show schedules
)

const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics aggregates
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // show listings
)

const (
	TTL_REALTIME_SHORT = 30 * time.Second // occupied-seat snapshots
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

const (
	CACHE_KEY_MOVIES_LIST    = CACHE_PREFIX + ":movies:list"
	CACHE_KEY_MOVIE_DETAIL   = CACHE_PREFIX + ":movies:detail:uuid:"  // + movie-id
	CACHE_KEY_SHOWS_BY_MOVIE = CACHE_PREFIX + ":shows:by_movie:uuid:" // + movie-id
	CACHE_KEY_SHOW_SEATS     = CACHE_PREFIX + ":shows:seats:uuid:"    // + show-id
	CACHE_KEY_DASHBOARD      = CACHE_PREFIX + ":analytics:dashboard"
)

// ShowSeatsKey returns the occupied-seats cache key for a show.
func ShowSeatsKey(showID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_SHOW_SEATS, showID)
}

// ShowsByMovieKey returns the show-listing cache key for a movie.
func ShowsByMovieKey(movieID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_SHOWS_BY_MOVIE, movieID)
}

// MovieDetailKey returns the detail cache key for a movie.
func MovieDetailKey(movieID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_MOVIE_DETAIL, movieID)
}
