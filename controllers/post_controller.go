package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogium/blogium/middleware"
	"github.com/blogium/blogium/models"
	"github.com/blogium/blogium/store"
	"github.com/blogium/blogium/utils"
)

// PostController serves the public listings and the author-only post
// mutations. All visibility decisions are delegated to the store.
type PostController struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	locations  *store.LocationStore
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{
		posts:      store.NewPostStore(db),
		categories: store.NewCategoryStore(db),
		locations:  store.NewLocationStore(db),
	}
}

type postForm struct {
	Title       string `form:"title"`
	Text        string `form:"text"`
	PubDate     string `form:"pub_date"`
	CategoryID  uint   `form:"category_id"`
	LocationID  uint   `form:"location_id"`
	IsPublished bool   `form:"is_published"`
}

// Index renders the paginated public post list, most recent first.
func (p *PostController) Index(ctx *gin.Context) {
	page := parsePage(ctx)
	posts, total, err := p.posts.ListVisible(time.Now(), page, postsPerPage)
	if err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load posts")
		return
	}

	data := baseData(ctx)
	data["Posts"] = posts
	data["Pagination"] = paginate(page, total)
	ctx.HTML(http.StatusOK, "index.html", data)
}

// CategoryPosts renders the visible posts of one published category.
// Absent and unpublished categories are both a 404.
func (p *PostController) CategoryPosts(ctx *gin.Context) {
	category, err := p.categories.GetPublishedBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load category failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load category")
		return
	}

	page := parsePage(ctx)
	posts, total, err := p.posts.ListVisibleByCategory(category.ID, time.Now(), page, postsPerPage)
	if err != nil {
		utils.Sugar.Errorf("list category posts failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load posts")
		return
	}

	data := baseData(ctx)
	data["Category"] = category
	data["Posts"] = posts
	data["Pagination"] = paginate(page, total)
	ctx.HTML(http.StatusOK, "category.html", data)
}

// Detail renders one post. The author sees their post unconditionally;
// everyone else only when the visibility predicate holds, and a post that
// exists but is hidden is indistinguishable from one that does not exist.
func (p *PostController) Detail(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderNotFound(ctx)
		return
	}

	viewerID, _ := middleware.UserID(ctx)
	post, err := p.posts.GetVisible(id, viewerID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load post failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load post")
		return
	}

	data := baseData(ctx)
	data["Post"] = post
	data["Comments"] = post.Comments
	ctx.HTML(http.StatusOK, "detail.html", data)
}

// CreateForm renders the new-post form. The route requires authentication.
func (p *PostController) CreateForm(ctx *gin.Context) {
	p.renderPostForm(ctx, nil, postForm{PubDate: time.Now().Format(pubDateLayout)}, "")
}

// Create persists a new post authored by the requesting identity and
// redirects to the author's profile.
func (p *PostController) Create(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	var form postForm
	_ = ctx.ShouldBind(&form)

	post, errMsg := p.buildPost(&form)
	if errMsg != "" {
		p.renderPostForm(ctx, nil, form, errMsg)
		return
	}
	post.AuthorID = userID

	if err := p.posts.Create(post); err != nil {
		utils.Sugar.Errorf("create post failed: %v", err)
		p.renderPostForm(ctx, nil, form, "failed to save the post")
		return
	}

	username, _ := middleware.Username(ctx)
	ctx.Redirect(http.StatusSeeOther, "/profile/"+username)
}

// EditForm renders the edit form. A non-author is silently redirected to
// the post's detail page, mirroring the behavior of the POST handler.
func (p *PostController) EditForm(ctx *gin.Context) {
	post, done := p.resolveForEdit(ctx)
	if done {
		return
	}

	form := postForm{
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate.Format(pubDateLayout),
		CategoryID:  post.CategoryID,
		IsPublished: post.IsPublished,
	}
	if post.LocationID != nil {
		form.LocationID = *post.LocationID
	}
	p.renderPostForm(ctx, post, form, "")
}

// Edit updates a post. Non-authors are soft-denied: redirected to the
// detail page with the post untouched.
func (p *PostController) Edit(ctx *gin.Context) {
	post, done := p.resolveForEdit(ctx)
	if done {
		return
	}

	var form postForm
	_ = ctx.ShouldBind(&form)

	updated, errMsg := p.buildPost(&form)
	if errMsg != "" {
		p.renderPostForm(ctx, post, form, errMsg)
		return
	}

	post.Title = updated.Title
	post.Text = updated.Text
	post.PubDate = updated.PubDate
	post.CategoryID = updated.CategoryID
	post.LocationID = updated.LocationID
	post.IsPublished = updated.IsPublished

	if err := p.posts.Update(post); err != nil {
		utils.Sugar.Errorf("update post failed: %v", err)
		p.renderPostForm(ctx, post, form, "failed to save the post")
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", post.ID))
}

// Delete removes a post for good. Non-authors get a hard denial.
func (p *PostController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderNotFound(ctx)
		return
	}

	post, err := p.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load post failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load post")
		return
	}

	viewerID, _ := middleware.UserID(ctx)
	if !isOwner(post.AuthorID, viewerID) {
		denyHard(ctx)
		return
	}

	if err := p.posts.Delete(post); err != nil {
		utils.Sugar.Errorf("delete post failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to delete post")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

// resolveForEdit loads the post and applies the soft denial for
// non-authors. The bool result reports that a response was already written.
func (p *PostController) resolveForEdit(ctx *gin.Context) (*models.Post, bool) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderNotFound(ctx)
		return nil, true
	}

	post, err := p.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			renderNotFound(ctx)
			return nil, true
		}
		utils.Sugar.Errorf("load post failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load post")
		return nil, true
	}

	viewerID, _ := middleware.UserID(ctx)
	if !isOwner(post.AuthorID, viewerID) {
		denySoft(ctx, post.ID)
		return nil, true
	}
	return post, false
}

const pubDateLayout = "2006-01-02T15:04"

// buildPost validates and normalizes the submitted form into a post value.
// The second result carries a user-facing message when validation fails.
func (p *PostController) buildPost(form *postForm) (*models.Post, string) {
	title := utils.Sanitize(strings.TrimSpace(form.Title))
	if title == "" {
		return nil, "title cannot be empty"
	}
	text := utils.Sanitize(strings.TrimSpace(form.Text))
	if text == "" {
		return nil, "text cannot be empty"
	}

	if form.CategoryID == 0 {
		return nil, "choose a category"
	}
	if _, err := p.categories.GetByID(form.CategoryID); err != nil {
		return nil, "choose a category"
	}

	pubDate := time.Now()
	if raw := strings.TrimSpace(form.PubDate); raw != "" {
		parsed, err := time.ParseInLocation(pubDateLayout, raw, time.Local)
		if err != nil {
			parsed, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		}
		if err != nil {
			return nil, "invalid publication date"
		}
		pubDate = parsed
	}

	post := &models.Post{
		Title:       title,
		Text:        text,
		PubDate:     pubDate,
		CategoryID:  form.CategoryID,
		IsPublished: form.IsPublished,
	}
	if form.LocationID != 0 {
		id := form.LocationID
		post.LocationID = &id
	}
	return post, ""
}

func (p *PostController) renderPostForm(ctx *gin.Context, post *models.Post, form postForm, errMsg string) {
	categories, err := p.categories.ListPublished()
	if err != nil {
		utils.Sugar.Errorf("list categories failed: %v", err)
	}
	locations, err := p.locations.ListPublished()
	if err != nil {
		utils.Sugar.Errorf("list locations failed: %v", err)
	}

	data := baseData(ctx)
	data["Post"] = post
	data["Form"] = form
	data["Categories"] = categories
	data["Locations"] = locations
	data["Error"] = errMsg

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusBadRequest
	}
	ctx.HTML(status, "post_form.html", data)
}
