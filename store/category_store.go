package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/blogium/blogium/models"
)

// ErrCategoryNotFound covers both absent and unpublished categories;
// an unpublished category does not exist as far as visitors are concerned.
var ErrCategoryNotFound = errors.New("category not found")

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// GetPublishedBySlug resolves a category for public pages.
func (s *CategoryStore) GetPublishedBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetByID resolves a category without publish gating, for form validation.
func (s *CategoryStore) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ListPublished returns the categories offered in the post form.
func (s *CategoryStore) ListPublished() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("is_published = ?", true).Order("title ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryStore) Create(category *models.Category) error {
	return s.db.Create(category).Error
}
