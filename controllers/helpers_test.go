package controllers_test

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blogium/blogium/config"
	"github.com/blogium/blogium/middleware"
	"github.com/blogium/blogium/models"
	"github.com/blogium/blogium/routes"
	"github.com/blogium/blogium/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// Stripped-down templates exposing just enough page content for assertions.
const testTemplateSrc = `
{{define "index.html"}}index:{{range .Posts}}[{{.Title}}]{{end}}{{end}}
{{define "category.html"}}category {{.Category.Title}}:{{range .Posts}}[{{.Title}}]{{end}}{{end}}
{{define "profile.html"}}profile {{.Profile.Username}}:{{range .Posts}}[{{.Title}}]{{end}}{{end}}
{{define "detail.html"}}post {{.Post.Title}}:{{range .Comments}}[{{.Text}}]{{end}}{{end}}
{{define "post_form.html"}}post form:{{.Error}}{{end}}
{{define "comment_form.html"}}comment form:{{.Comment.Text}}{{end}}
{{define "profile_form.html"}}profile form{{end}}
{{define "login.html"}}login:{{.Error}}{{end}}
{{define "registration.html"}}registration:{{.Error}}{{end}}
{{define "404.html"}}not found{{end}}
{{define "403.html"}}forbidden{{end}}
`

func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("test").Funcs(routes.TemplateFuncs()).Parse(testTemplateSrc)))
	r.Use(middleware.CurrentUser())
	routes.Register(r, db)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, title string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{Title: title, IsPublished: published}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, category *models.Category, title string, published bool, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:    author.ID,
		CategoryID:  category.ID,
		Title:       title,
		Text:        "text",
		PubDate:     pubDate,
		IsPublished: published,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func seedComment(t *testing.T, db *gorm.DB, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{PostID: post.ID, AuthorID: author.ID, Text: text}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return comment
}

func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Username, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doGET(r *gin.Engine, path string, as *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if as != nil {
		req.AddCookie(as)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPOST(r *gin.Engine, path string, form url.Values, as *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if as != nil {
		req.AddCookie(as)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
