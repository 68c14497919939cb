package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogium/blogium/middleware"
	"github.com/blogium/blogium/models"
	"github.com/blogium/blogium/store"
	"github.com/blogium/blogium/utils"
)

// CommentController handles comment creation and the author-only comment
// mutations. Unlike post edits, unauthorized comment mutation is a hard
// denial, not a redirect.
type CommentController struct {
	comments *store.CommentStore
	posts    *store.PostStore
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{
		comments: store.NewCommentStore(db),
		posts:    store.NewPostStore(db),
	}
}

// Add attaches a comment by the requesting identity to an existing post.
// A blank submission persists nothing and silently returns to the detail
// page.
func (c *CommentController) Add(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		renderNotFound(ctx)
		return
	}

	post, err := c.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load post failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load post")
		return
	}

	detailURL := fmt.Sprintf("/posts/%d", post.ID)

	text := utils.Sanitize(strings.TrimSpace(ctx.PostForm("text")))
	if text == "" {
		ctx.Redirect(http.StatusSeeOther, detailURL)
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Text:     text,
	}
	if err := c.comments.Create(&comment); err != nil {
		utils.Sugar.Errorf("create comment failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to create comment")
		return
	}

	ctx.Redirect(http.StatusSeeOther, detailURL)
}

// EditForm renders the comment edit form for its author; anyone else is
// hard-denied.
func (c *CommentController) EditForm(ctx *gin.Context) {
	comment, done := c.resolveForMutation(ctx)
	if done {
		return
	}

	data := baseData(ctx)
	data["Comment"] = comment
	data["PostID"] = comment.PostID
	ctx.HTML(http.StatusOK, "comment_form.html", data)
}

// Edit updates a comment's text and returns to the post's detail page.
func (c *CommentController) Edit(ctx *gin.Context) {
	comment, done := c.resolveForMutation(ctx)
	if done {
		return
	}

	detailURL := fmt.Sprintf("/posts/%d", comment.PostID)

	text := utils.Sanitize(strings.TrimSpace(ctx.PostForm("text")))
	if text == "" {
		ctx.Redirect(http.StatusSeeOther, detailURL)
		return
	}

	comment.Text = text
	if err := c.comments.Update(comment); err != nil {
		utils.Sugar.Errorf("update comment failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to update comment")
		return
	}

	ctx.Redirect(http.StatusSeeOther, detailURL)
}

// Delete removes a comment; only its author may do so.
func (c *CommentController) Delete(ctx *gin.Context) {
	comment, done := c.resolveForMutation(ctx)
	if done {
		return
	}

	if err := c.comments.Delete(comment); err != nil {
		utils.Sugar.Errorf("delete comment failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to delete comment")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/")
}

// resolveForMutation loads the addressed comment, checks it belongs to the
// addressed post and hard-denies non-authors. The bool result reports that
// a response was already written.
func (c *CommentController) resolveForMutation(ctx *gin.Context) (*models.Comment, bool) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		renderNotFound(ctx)
		return nil, true
	}
	commentID, ok := parseID(ctx.Param("comment_id"))
	if !ok {
		renderNotFound(ctx)
		return nil, true
	}

	comment, err := c.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, store.ErrCommentNotFound) {
			renderNotFound(ctx)
			return nil, true
		}
		utils.Sugar.Errorf("load comment failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load comment")
		return nil, true
	}
	if comment.PostID != postID {
		renderNotFound(ctx)
		return nil, true
	}

	viewerID, _ := middleware.UserID(ctx)
	if !isOwner(comment.AuthorID, viewerID) {
		denyHard(ctx)
		return nil, true
	}
	return comment, false
}
