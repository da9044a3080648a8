package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mikolay/myblog/config"
	"github.com/mikolay/myblog/controllers"
	"github.com/mikolay/myblog/middleware"
	"github.com/mikolay/myblog/repositories"
	"github.com/mikolay/myblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
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
	r.HandleMethodNotAllowed = true
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	mailer := utils.NewSMTPMailer(cfg)

	postController := controllers.NewPostController(postRepo, commentRepo, cfg)
	commentController := controllers.NewCommentController(postRepo, commentRepo)
	shareController := controllers.NewShareController(postRepo, mailer, cfg)
	feedController := controllers.NewFeedController(postRepo, cfg)
	statsController := controllers.NewStatsController(postRepo)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/feed", feedController.RSS)

	api := r.Group("/api/v1")
	api.GET("/posts", postController.List)
	api.GET("/posts/:id/share", shareController.Form)
	api.GET("/archive/:year/:month/:day/:slug", postController.Detail)
	api.GET("/stats", statsController.Sidebar)

	// Submission endpoints are POST only and rate limited per visitor IP.
	submit := api.Group("")
	submit.Use(middleware.RateLimitMiddleware())
	submit.POST("/posts/:id/comments", commentController.Create)
	submit.POST("/posts/:id/share", shareController.Send)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	return r
}
