package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogium/blogium/middleware"
	"github.com/blogium/blogium/models"
	"github.com/blogium/blogium/store"
	"github.com/blogium/blogium/utils"
)

// sessionDuration is how long an issued session cookie stays valid.
const sessionDuration = 72 * time.Hour

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// AuthController handles local registration, login and logout. Sessions are
// signed tokens carried in an HTTP-only cookie.
type AuthController struct {
	users *store.UserStore
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{users: store.NewUserStore(db)}
}

// LoginForm renders the login page.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", baseData(ctx))
}

// Login verifies credentials and issues the session cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	user, err := a.users.GetByUsername(username)
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		data := baseData(ctx)
		data["Error"] = "invalid username or password"
		ctx.HTML(http.StatusUnauthorized, "login.html", data)
		return
	}

	if err := a.issueSession(ctx, user); err != nil {
		utils.Sugar.Errorf("issue session failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to sign in")
		return
	}

	next := ctx.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	ctx.Redirect(http.StatusSeeOther, next)
}

// RegisterForm renders the registration page.
func (a *AuthController) RegisterForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "registration.html", baseData(ctx))
}

// Register creates a local user and signs them in.
func (a *AuthController) Register(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	email := strings.TrimSpace(ctx.PostForm("email"))
	password := ctx.PostForm("password")
	confirm := ctx.PostForm("confirm")

	if msg := validateRegistration(username, password, confirm); msg != "" {
		a.renderRegisterError(ctx, msg)
		return
	}

	if _, err := a.users.GetByUsername(username); err == nil {
		a.renderRegisterError(ctx, "username already exists")
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		utils.Sugar.Errorf("lookup username failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to register")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.Sugar.Errorf("hash password failed: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to register")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.users.Create(&user); err != nil {
		utils.Sugar.Errorf("create user failed: %v", err)
		a.renderRegisterError(ctx, "failed to create the account")
		return
	}

	if err := a.issueSession(ctx, &user); err != nil {
		utils.Sugar.Errorf("issue session failed: %v", err)
		ctx.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// Logout clears the session cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (a *AuthController) issueSession(ctx *gin.Context, user *models.User) error {
	token, err := utils.GenerateToken(user.ID, user.Username, sessionDuration)
	if err != nil {
		return err
	}
	ctx.SetCookie(middleware.SessionCookie, token, int(sessionDuration.Seconds()), "/", "", false, true)
	return nil
}

func (a *AuthController) renderRegisterError(ctx *gin.Context, msg string) {
	data := baseData(ctx)
	data["Error"] = msg
	ctx.HTML(http.StatusBadRequest, "registration.html", data)
}

func validateRegistration(username, password, confirm string) string {
	if l := len(username); l < 3 || l > 30 {
		return "username must be 3-30 characters"
	}
	if !usernamePattern.MatchString(username) {
		return "username may contain letters, digits, '-' and '_' only"
	}
	if len(password) < 6 || len(password) > 64 {
		return "password must be 6-64 characters"
	}
	if password != confirm {
		return "passwords do not match"
	}
	return ""
}
