package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/blogium/blogium/models"
)

var ErrPostNotFound = errors.New("post not found")

// PostStore centralizes every post query, including the public visibility
// predicate. Visibility takes the reference instant as an argument so the
// pub_date boundary never depends on an ambient clock.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// visibleAt scopes a post query to rows eligible for public display at the
// given instant: published, in a published category, publication date reached.
func visibleAt(now time.Time) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND categories.is_published = ? AND posts.pub_date <= ?", true, true, now)
	}
}

// ListVisible returns the page of publicly visible posts, most recent first.
func (s *PostStore) ListVisible(now time.Time, page, pageSize int) ([]models.Post, int64, error) {
	q := s.db.Scopes(visibleAt(now))
	return s.listPage(q, page, pageSize)
}

// ListVisibleByCategory returns the visible posts of one category.
func (s *PostStore) ListVisibleByCategory(categoryID uint, now time.Time, page, pageSize int) ([]models.Post, int64, error) {
	q := s.db.Scopes(visibleAt(now)).Where("posts.category_id = ?", categoryID)
	return s.listPage(q, page, pageSize)
}

// ListVisibleByAuthor returns the posts of one author as any other identity
// sees them, i.e. with the full visibility predicate applied.
func (s *PostStore) ListVisibleByAuthor(authorID uint, now time.Time, page, pageSize int) ([]models.Post, int64, error) {
	q := s.db.Scopes(visibleAt(now)).Where("posts.author_id = ?", authorID)
	return s.listPage(q, page, pageSize)
}

// ListByAuthor returns every post of one author regardless of publish state.
// Only the author's own profile page may use it.
func (s *PostStore) ListByAuthor(authorID uint, page, pageSize int) ([]models.Post, int64, error) {
	q := s.db.Where("posts.author_id = ?", authorID)
	return s.listPage(q, page, pageSize)
}

func (s *PostStore) listPage(q *gorm.DB, page, pageSize int) ([]models.Post, int64, error) {
	var total int64
	if err := q.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.
		Select("posts.*").
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetVisible resolves a post for a detail view in a single query. The row is
// found iff the id matches and either the viewer is the author or the full
// visibility predicate holds; existence and visibility failures are
// indistinguishable to the caller, both come back as ErrPostNotFound.
// An anonymous viewer passes viewerID 0, which never matches an author.
func (s *PostStore) GetVisible(id, viewerID uint, now time.Time) (*models.Post, error) {
	var post models.Post
	err := s.db.
		Select("posts.*").
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("posts.id = ?", id).
		Where(s.db.
			Where("posts.author_id = ?", viewerID).
			Or("posts.is_published = ? AND categories.is_published = ? AND posts.pub_date <= ?", true, true, now)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("comments.created_at ASC") }).
		Preload("Comments.Author").
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetByID resolves a post by primary key without any visibility gating.
// Mutation handlers use it; they apply their own authorship checks.
func (s *PostStore) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) Create(post *models.Post) error {
	return s.db.Create(post).Error
}

func (s *PostStore) Update(post *models.Post) error {
	return s.db.Save(post).Error
}

// Delete removes the post and its comments for good.
func (s *PostStore) Delete(post *models.Post) error {
	if err := s.db.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return s.db.Delete(post).Error
}
