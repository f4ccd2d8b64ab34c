package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serenspace/serenspace/config"
	"github.com/serenspace/serenspace/controllers"
	"github.com/serenspace/serenspace/middleware"
	"github.com/serenspace/serenspace/repos"
	"github.com/serenspace/serenspace/services"
	"github.com/serenspace/serenspace/utils"
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
	r.Use(middleware.RequestID())

	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	moodRepo := repos.NewMoodRepo(db)
	insightRepo := repos.NewInsightRepo(db)
	profileRepo := repos.NewProfileRepo(db)

	tracker := services.NewStreakTracker(profileRepo)
	aggregator := services.NewMoodAggregator(moodRepo, insightRepo)

	moodController := controllers.NewMoodController(moodRepo, profileRepo, tracker)
	insightController := controllers.NewInsightController(aggregator)
	profileController := controllers.NewProfileController(profileRepo)
	postController := controllers.NewPostController(db)
	toolController := controllers.NewToolController(db)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	api.POST("/moods", moodController.CreateMood)
	api.GET("/moods", moodController.ListMoods)
	api.GET("/moods/stats", moodController.GetStats)
	api.PUT("/moods/:id", moodController.UpdateMood)
	api.DELETE("/moods/:id", moodController.DeleteMood)

	api.POST("/insights/generate", insightController.Generate)
	api.GET("/insights", insightController.List)
	api.PUT("/insights/:id/read", insightController.MarkRead)

	api.GET("/profile", profileController.Me)

	api.POST("/posts", postController.CreatePost)
	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/my", postController.ListMyPosts)
	api.POST("/posts/:id/like", postController.ToggleLike)
	api.DELETE("/posts/:id", postController.DeletePost)
	api.POST("/posts/:id/report", postController.ReportPost)

	api.GET("/tools", toolController.ListTools)
	api.GET("/tools/meta/categories", toolController.ListCategories)
	api.GET("/tools/:id", toolController.GetTool)
	api.POST("/tools/seed", toolController.SeedTools)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "endpoint not found")
	})

	return r
}
