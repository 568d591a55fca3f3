package movies

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(movie *Movie) error
	GetByID(id uuid.UUID) (*Movie, error)
	GetAll(query MovieListQuery) ([]Movie, int64, error)
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(movie *Movie) error {
	return r.db.Create(movie).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) GetAll(query MovieListQuery) ([]Movie, int64, error) {
	var movies []Movie
	var totalCount int64

	db := r.db.Model(&Movie{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
			searchTerm, searchTerm)
	}

	if query.Genre != "" {
		db = db.Where("LOWER(genre) = ?", strings.ToLower(query.Genre))
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("release_date DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&movies).Error

	return movies, totalCount, err
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Movie{}).Error
}
