package store

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/blogium/blogium/models"
)

func TestListVisibleSkipsUnpublishedPosts(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	yesterday := time.Now().Add(-24 * time.Hour)
	seedPost(t, db, author, category, "visible", true, yesterday)
	seedPost(t, db, author, category, "draft", false, yesterday)

	got, total, err := posts.ListVisible(time.Now(), 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(1))
	is.Equal(titles(got), []string{"visible"})
}

func TestListVisibleSkipsUnpublishedCategory(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	visible := seedCategory(t, db, "travel", true)
	hidden := seedCategory(t, db, "drafts", false)
	yesterday := time.Now().Add(-24 * time.Hour)
	seedPost(t, db, author, visible, "in-open-category", true, yesterday)
	// Published post, but its category is not
	seedPost(t, db, author, hidden, "in-hidden-category", true, yesterday)

	got, total, err := posts.ListVisible(time.Now(), 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(1))
	is.Equal(titles(got), []string{"in-open-category"})
}

func TestListVisibleTimeBoundary(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	now := time.Now()
	seedPost(t, db, author, category, "already-out", true, now.Add(-24*time.Hour))
	seedPost(t, db, author, category, "scheduled", true, now.Add(24*time.Hour))

	// Today the scheduled post is invisible
	got, _, err := posts.ListVisible(now, 1, 10)
	is.NoErr(err)
	is.Equal(titles(got), []string{"already-out"})

	// Once its pub_date passes it appears, newest first
	got, _, err = posts.ListVisible(now.Add(48*time.Hour), 1, 10)
	is.NoErr(err)
	is.Equal(titles(got), []string{"scheduled", "already-out"})
}

func TestListVisibleOrdersMostRecentFirst(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	now := time.Now()
	seedPost(t, db, author, category, "oldest", true, now.Add(-72*time.Hour))
	seedPost(t, db, author, category, "newest", true, now.Add(-1*time.Hour))
	seedPost(t, db, author, category, "middle", true, now.Add(-24*time.Hour))

	got, _, err := posts.ListVisible(now, 1, 10)
	is.NoErr(err)
	is.Equal(titles(got), []string{"newest", "middle", "oldest"})
}

func TestListVisiblePaginates(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	now := time.Now()
	for i := 0; i < 5; i++ {
		seedPost(t, db, author, category, "post", true, now.Add(time.Duration(-i-1)*time.Hour))
	}

	got, total, err := posts.ListVisible(now, 2, 2)
	is.NoErr(err)
	is.Equal(total, int64(5))
	is.Equal(len(got), 2)
}

func TestListByAuthorBypassesPredicate(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	hidden := seedCategory(t, db, "drafts", false)
	now := time.Now()
	seedPost(t, db, author, category, "public", true, now.Add(-time.Hour))
	seedPost(t, db, author, category, "draft", false, now.Add(-time.Hour))
	seedPost(t, db, author, category, "scheduled", true, now.Add(time.Hour))
	seedPost(t, db, author, hidden, "hidden-category", true, now.Add(-time.Hour))

	// The owner's profile listing shows every post
	got, total, err := posts.ListByAuthor(author.ID, 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(4))

	// Everyone else sees only the public one
	got, total, err = posts.ListVisibleByAuthor(author.ID, now, 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(1))
	is.Equal(titles(got), []string{"public"})
}

func TestGetVisibleAuthorBypass(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	stranger := seedUser(t, db, "bob")
	category := seedCategory(t, db, "travel", true)
	draft := seedPost(t, db, author, category, "draft", false, time.Now().Add(-time.Hour))

	now := time.Now()

	// The author always reaches their own post
	got, err := posts.GetVisible(draft.ID, author.ID, now)
	is.NoErr(err)
	is.Equal(got.Title, "draft")

	// Anyone else cannot tell a hidden post from a missing one
	_, err = posts.GetVisible(draft.ID, stranger.ID, now)
	is.Equal(err, ErrPostNotFound)
	_, err = posts.GetVisible(draft.ID, 0, now)
	is.Equal(err, ErrPostNotFound)
	_, err = posts.GetVisible(9999, stranger.ID, now)
	is.Equal(err, ErrPostNotFound)
}

func TestGetVisibleLoadsCommentsInInsertionOrder(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	post := seedPost(t, db, author, category, "post", true, time.Now().Add(-time.Hour))

	base := time.Now().Add(-time.Minute)
	for i, text := range []string{"first", "second", "third"} {
		c := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: text, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		is.NoErr(comments.Create(c))
	}

	got, err := posts.GetVisible(post.ID, 0, time.Now())
	is.NoErr(err)
	is.Equal(len(got.Comments), 3)
	is.Equal(got.Comments[0].Text, "first")
	is.Equal(got.Comments[2].Text, "third")
}

func TestCreateKeepsDraftUnpublished(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)

	draft := &models.Post{
		AuthorID:    author.ID,
		CategoryID:  category.ID,
		Title:       "draft",
		Text:        "text",
		PubDate:     time.Now().Add(-time.Hour),
		IsPublished: false,
	}
	is.NoErr(posts.Create(draft))

	// The stored row must carry the flag exactly as submitted
	var reloaded models.Post
	is.NoErr(db.First(&reloaded, draft.ID).Error)
	is.Equal(reloaded.IsPublished, false)

	listed, total, err := posts.ListVisible(time.Now(), 1, 10)
	is.NoErr(err)
	is.Equal(total, int64(0))
	is.Equal(len(listed), 0)
}

func TestDeleteRemovesComments(t *testing.T) {
	is := is.New(t)
	db := newTestDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	author := seedUser(t, db, "ann")
	category := seedCategory(t, db, "travel", true)
	post := seedPost(t, db, author, category, "post", true, time.Now().Add(-time.Hour))
	is.NoErr(comments.Create(&models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "bye"}))

	loaded, err := posts.GetByID(post.ID)
	is.NoErr(err)
	is.NoErr(posts.Delete(loaded))

	var postCount, commentCount int64
	is.NoErr(db.Model(&models.Post{}).Count(&postCount).Error)
	is.NoErr(db.Model(&models.Comment{}).Count(&commentCount).Error)
	is.Equal(postCount, int64(0))
	is.Equal(commentCount, int64(0))
}
