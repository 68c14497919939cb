package routes

import (
	"html/template"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blogium/blogium/config"
	"github.com/blogium/blogium/controllers"
	"github.com/blogium/blogium/middleware"
	"github.com/blogium/blogium/utils"
)

// SetupRouter wires middlewares, templates and controllers into an engine.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rotated file, separate from the app log
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.RequestID())
	r.Use(middleware.CurrentUser())

	r.Static("/static", "./static")
	r.SetFuncMap(TemplateFuncs())
	r.LoadHTMLGlob(cfg.TemplateGlob)

	Register(r, db)
	return r
}

// TemplateFuncs returns the helpers the templates rely on.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

// Register attaches every route to the given engine. Split from SetupRouter
// so handler tests can wire the routes onto an engine of their own.
func Register(r *gin.Engine, db *gorm.DB) {
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	profileController := controllers.NewProfileController(db)
	authController := controllers.NewAuthController(db)

	r.GET("/", postController.Index)
	r.GET("/category/:slug", postController.CategoryPosts)

	posts := r.Group("/posts")
	posts.GET("/create", middleware.LoginRequired(), postController.CreateForm)
	posts.POST("/create", middleware.LoginRequired(), postController.Create)
	posts.GET("/:id", postController.Detail)
	posts.GET("/:id/edit", middleware.LoginRequired(), postController.EditForm)
	posts.POST("/:id/edit", middleware.LoginRequired(), postController.Edit)
	posts.POST("/:id/delete", middleware.LoginRequired(), postController.Delete)
	posts.POST("/:id/comment", middleware.LoginRequired(), commentController.Add)
	posts.GET("/:id/edit_comment/:comment_id", middleware.LoginRequired(), commentController.EditForm)
	posts.POST("/:id/edit_comment/:comment_id", middleware.LoginRequired(), commentController.Edit)
	posts.POST("/:id/delete_comment/:comment_id", middleware.LoginRequired(), commentController.Delete)

	profile := r.Group("/profile")
	profile.GET("/edit", middleware.LoginRequired(), profileController.EditForm)
	profile.POST("/edit", middleware.LoginRequired(), profileController.Edit)
	profile.GET("/:username", profileController.Show)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit())
	auth.GET("/login", authController.LoginForm)
	auth.POST("/login", authController.Login)
	auth.GET("/registration", authController.RegisterForm)
	auth.POST("/registration", authController.Register)
	auth.POST("/logout", authController.Logout)
}
