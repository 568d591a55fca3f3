package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"
	"cinebook/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order so foreign
// key constraints hold throughout.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seat_claims",
		"bookings",
		"shows",
		"movies",
		"users",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		fmt.Printf("   Cleaned table: %s\n", table)
	}

	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	if err := s.SeedShows(movieIDs); err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}

	return nil
}

func (s *Seeder) SeedUsers() error {
	fmt.Println("   Seeding users...")

	password, err := bcrypt.GenerateFromPassword([]byte("Password@123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	seedUsers := []users.User{
		{
			ID:        uuid.New(),
			FirstName: "Admin",
			LastName:  "CineBook",
			Email:     "admin@cinebook.io",
			Password:  string(password),
			Role:      users.RoleAdmin,
		},
		{
			ID:        uuid.New(),
			FirstName: "Asha",
			LastName:  "Patel",
			Email:     "asha@example.com",
			Password:  string(password),
			Role:      users.RoleUser,
		},
		{
			ID:        uuid.New(),
			FirstName: "Rohan",
			LastName:  "Mehta",
			Email:     "rohan@example.com",
			Password:  string(password),
			Role:      users.RoleUser,
		},
	}

	for _, user := range seedUsers {
		if err := s.db.GetPostgreSQL().Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.Email, err)
		}
		fmt.Printf("   Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("   Seeding movies...")

	seedMovies := []movies.Movie{
		{
			ID:             uuid.New(),
			Title:          "Interstellar Odyssey",
			Description:    "A crew crosses the event horizon in search of a new home for humanity.",
			Genre:          "Sci-Fi",
			RuntimeMinutes: 169,
			PosterURL:      "https://images.cinebook.io/posters/interstellar-odyssey.jpg",
			ReleaseDate:    time.Now().AddDate(0, -1, 0),
		},
		{
			ID:             uuid.New(),
			Title:          "The Midnight Heist",
			Description:    "Five strangers, one vault, and a plan that unravels before sunrise.",
			Genre:          "Thriller",
			RuntimeMinutes: 128,
			PosterURL:      "https://images.cinebook.io/posters/midnight-heist.jpg",
			ReleaseDate:    time.Now().AddDate(0, 0, -10),
		},
		{
			ID:             uuid.New(),
			Title:          "Monsoon Wedding Crashers",
			Description:    "Two brothers gatecrash the wrong wedding in the middle of monsoon season.",
			Genre:          "Comedy",
			RuntimeMinutes: 112,
			PosterURL:      "https://images.cinebook.io/posters/monsoon-wedding-crashers.jpg",
			ReleaseDate:    time.Now().AddDate(0, 0, -3),
		},
	}

	movieIDs := make([]uuid.UUID, 0, len(seedMovies))
	for _, movie := range seedMovies {
		if err := s.db.GetPostgreSQL().Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}
		movieIDs = append(movieIDs, movie.ID)
		fmt.Printf("   Created movie: %s\n", movie.Title)
	}

	return movieIDs, nil
}

func (s *Seeder) SeedShows(movieIDs []uuid.UUID) error {
	fmt.Println("   Seeding shows...")

	// Three showtimes per movie over the next two days
	showTimes := []time.Duration{
		18 * time.Hour,
		27 * time.Hour,
		42 * time.Hour,
	}
	basePrices := []float64{150, 200, 250}

	now := time.Now()
	for i, movieID := range movieIDs {
		for j, offset := range showTimes {
			show := shows.Show{
				ID:           uuid.New(),
				MovieID:      movieID,
				ShowDateTime: now.Add(offset).Round(time.Minute),
				ShowPrice:    basePrices[(i+j)%len(basePrices)],
			}

			if err := s.db.GetPostgreSQL().Create(&show).Error; err != nil {
				return fmt.Errorf("failed to create show: %w", err)
			}
			fmt.Printf("   Created show: %s at %s (base price %.0f)\n",
				show.ID, show.ShowDateTime.Format(time.RFC3339), show.ShowPrice)
		}
	}

	return nil
}
