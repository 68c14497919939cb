package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/blogium/blogium/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns a post's comments in insertion order.
func (s *CommentStore) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *CommentStore) Create(comment *models.Comment) error {
	return s.db.Create(comment).Error
}

func (s *CommentStore) Update(comment *models.Comment) error {
	return s.db.Save(comment).Error
}

func (s *CommentStore) Delete(comment *models.Comment) error {
	return s.db.Delete(comment).Error
}
