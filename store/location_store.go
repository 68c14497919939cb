package store

import (
	"gorm.io/gorm"

	"github.com/blogium/blogium/models"
)

type LocationStore struct {
	db *gorm.DB
}

func NewLocationStore(db *gorm.DB) *LocationStore {
	return &LocationStore{db: db}
}

// ListPublished returns the locations offered in the post form.
func (s *LocationStore) ListPublished() ([]models.Location, error) {
	var locations []models.Location
	err := s.db.Where("is_published = ?", true).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (s *LocationStore) Create(location *models.Location) error {
	return s.db.Create(location).Error
}
