package shows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/movies"
)

type fakeShowRepo struct {
	shows map[uuid.UUID]*Show
}

func newFakeShowRepo() *fakeShowRepo {
	return &fakeShowRepo{shows: make(map[uuid.UUID]*Show)}
}

func (f *fakeShowRepo) Create(show *Show) error {
	show.ID = uuid.New()
	f.shows[show.ID] = show
	return nil
}

func (f *fakeShowRepo) GetByID(id uuid.UUID) (*Show, error) {
	show, ok := f.shows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return show, nil
}

func (f *fakeShowRepo) GetByMovieID(movieID uuid.UUID) ([]Show, error) { return nil, nil }
func (f *fakeShowRepo) GetUpcoming(limit int) ([]Show, error)          { return nil, nil }

func (f *fakeShowRepo) Delete(id uuid.UUID) error {
	delete(f.shows, id)
	return nil
}

func (f *fakeShowRepo) GetOccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeShowRepo) AreSeatsOccupied(ctx context.Context, showID uuid.UUID, seats []string) ([]string, error) {
	return nil, nil
}

func (f *fakeShowRepo) ClaimSeats(tx *gorm.DB, showID, bookingID uuid.UUID, seats []string) (int64, error) {
	return 0, nil
}

type fakeMovieRepo struct {
	movies map[uuid.UUID]*movies.Movie
}

func (f *fakeMovieRepo) Create(movie *movies.Movie) error { return nil }

func (f *fakeMovieRepo) GetByID(id uuid.UUID) (*movies.Movie, error) {
	movie, ok := f.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return movie, nil
}

func (f *fakeMovieRepo) GetAll(query movies.MovieListQuery) ([]movies.Movie, int64, error) {
	return nil, 0, nil
}

func (f *fakeMovieRepo) Delete(id uuid.UUID) error { return nil }

func seededService(t *testing.T) (Service, *fakeShowRepo, uuid.UUID) {
	t.Helper()

	showRepo := newFakeShowRepo()
	show := &Show{
		MovieID:      uuid.New(),
		ShowDateTime: time.Now().Add(24 * time.Hour),
		ShowPrice:    200,
	}
	if err := showRepo.Create(show); err != nil {
		t.Fatalf("seeding show failed: %v", err)
	}

	svc := NewService(showRepo, &fakeMovieRepo{movies: make(map[uuid.UUID]*movies.Movie)})
	return svc, showRepo, show.ID
}

func TestDeleteShowRemovesShow(t *testing.T) {
	svc, repo, showID := seededService(t)

	if err := svc.DeleteShow(showID); err != nil {
		t.Fatalf("DeleteShow returned error: %v", err)
	}
	if _, ok := repo.shows[showID]; ok {
		t.Error("show should be removed from the repository")
	}
}

func TestDeleteShowNotFound(t *testing.T) {
	svc, _, _ := seededService(t)

	if err := svc.DeleteShow(uuid.New()); !errors.Is(err, ErrShowNotFound) {
		t.Errorf("DeleteShow = %v, want ErrShowNotFound", err)
	}
}

func TestGetShowByIDNotFound(t *testing.T) {
	svc, _, _ := seededService(t)

	if _, err := svc.GetShowByID(uuid.New()); !errors.Is(err, ErrShowNotFound) {
		t.Errorf("GetShowByID = %v, want ErrShowNotFound", err)
	}
}
