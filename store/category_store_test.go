package store

import (
	"testing"

	"github.com/matryer/is"

	"github.com/blogium/blogium/models"
)

func TestGetPublishedBySlug(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	categories := NewCategoryStore(db)

	is.NoErr(categories.Create(&models.Category{Title: "Open Category", IsPublished: true}))
	is.NoErr(categories.Create(&models.Category{Title: "Hidden Category", IsPublished: false}))

	// The slug is derived from the title when none is given
	got, err := categories.GetPublishedBySlug("open-category")
	is.NoErr(err)
	is.Equal(got.Title, "Open Category")

	// An unpublished category is indistinguishable from a missing one
	_, err = categories.GetPublishedBySlug("hidden-category")
	is.Equal(err, ErrCategoryNotFound)
	_, err = categories.GetPublishedBySlug("no-such-category")
	is.Equal(err, ErrCategoryNotFound)
}

func TestCreateKeepsCategoryUnpublished(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	categories := NewCategoryStore(db)

	is.NoErr(categories.Create(&models.Category{Title: "Hidden", IsPublished: false}))

	var reloaded models.Category
	is.NoErr(db.Where("title = ?", "Hidden").First(&reloaded).Error)
	is.Equal(reloaded.IsPublished, false)
}

func TestListPublished(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	categories := NewCategoryStore(db)

	is.NoErr(categories.Create(&models.Category{Title: "B", IsPublished: true}))
	is.NoErr(categories.Create(&models.Category{Title: "A", IsPublished: true}))
	is.NoErr(categories.Create(&models.Category{Title: "C", IsPublished: false}))

	got, err := categories.ListPublished()
	is.NoErr(err)
	is.Equal(len(got), 2)
	is.Equal(got[0].Title, "A")
	is.Equal(got[1].Title, "B")
}
