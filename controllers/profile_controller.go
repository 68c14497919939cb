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

// ProfileController serves user profile pages and profile editing.
type ProfileController struct {
	users *store.UserStore
	posts *store.PostStore
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{
		users: store.NewUserStore(db),
		posts: store.NewPostStore(db),
	}
}

// Show renders a user's profile with their posts. The owner sees every
// post they authored; everyone else sees only publicly visible ones.
func (p *ProfileController) Show(ctx *gin.Context) {
	username := ctx.Param("username")
	profile, err := p.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load user failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load user")
		return
	}

	page := parsePage(ctx)
	viewerName, _ := middleware.Username(ctx)

	var (
		posts []models.Post
		total int64
	)
	if viewerName == profile.Username {
		// The owner's profile bypasses the visibility predicate entirely
		posts, total, err = p.posts.ListByAuthor(profile.ID, page, postsPerPage)
	} else {
		posts, total, err = p.posts.ListVisibleByAuthor(profile.ID, time.Now(), page, postsPerPage)
	}
	if err != nil {
		utils.Sugar.Errorf("list profile posts failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load posts")
		return
	}

	data := baseData(ctx)
	data["Profile"] = profile
	data["Posts"] = posts
	data["Pagination"] = paginate(page, total)
	ctx.HTML(http.StatusOK, "profile.html", data)
}

// EditForm renders the profile form of the requesting identity.
func (p *ProfileController) EditForm(ctx *gin.Context) {
	userID, _ := middleware.UserID(ctx)
	user, err := p.users.GetByID(userID)
	if err != nil {
		renderNotFound(ctx)
		return
	}

	data := baseData(ctx)
	data["User"] = user
	ctx.HTML(http.StatusOK, "profile_form.html", data)
}

// Edit updates the requester's profile fields and notifies the operator
// best-effort; a failed notification never fails the request.
func (p *ProfileController) Edit(ctx *gin.Context) {
	userID, _ := middleware.UserID(ctx)
	user, err := p.users.GetByID(userID)
	if err != nil {
		renderNotFound(ctx)
		return
	}

	user.FirstName = utils.Sanitize(strings.TrimSpace(ctx.PostForm("first_name")))
	user.LastName = utils.Sanitize(strings.TrimSpace(ctx.PostForm("last_name")))
	user.Email = strings.TrimSpace(ctx.PostForm("email"))
	user.Bio = utils.Sanitize(strings.TrimSpace(ctx.PostForm("bio")))

	if err := p.users.Update(user); err != nil {
		utils.Sugar.Errorf("update profile failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to update profile")
		return
	}

	go utils.NotifyOperator(
		"The user changed the profile",
		fmt.Sprintf("%s changed their profile", user.Username),
	)

	ctx.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}
