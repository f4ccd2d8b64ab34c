package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/serenspace/serenspace/config"
	"github.com/serenspace/serenspace/middleware"
	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/repos"
	"github.com/serenspace/serenspace/services"
	"github.com/serenspace/serenspace/utils"
)

const testUID = "test-uid-1"

func init() {
	gin.SetMode(gin.TestMode)
	// Redis points at a closed port so cache calls fail fast and every
	// handler takes its database fallback path.
	config.SetForTesting(config.AppConfig{
		JWTSecret:          "test-secret",
		RateLimitPerMinute: 1000,
		RedisHost:          "127.0.0.1",
		RedisPort:          1,
	})
	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(&models.User{}, &models.Mood{}, &models.Insight{},
		&models.Post{}, &models.Report{}, &models.CopingTool{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// asUser injects an authenticated identity the way AuthRequired would after
// verifying a token.
func asUser(uid, displayName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, uid)
		ctx.Set(middleware.ContextDisplayNameKey, displayName)
		ctx.Next()
	}
}

func testRouter(t *testing.T, db *gorm.DB, uid string) *gin.Engine {
	t.Helper()
	moodRepo := repos.NewMoodRepo(db)
	insightRepo := repos.NewInsightRepo(db)
	profileRepo := repos.NewProfileRepo(db)
	tracker := services.NewStreakTracker(profileRepo)
	aggregator := services.NewMoodAggregator(moodRepo, insightRepo)

	moodCtl := NewMoodController(moodRepo, profileRepo, tracker)
	insightCtl := NewInsightController(aggregator)
	profileCtl := NewProfileController(profileRepo)
	postCtl := NewPostController(db)
	toolCtl := NewToolController(db)

	r := gin.New()
	api := r.Group("/api/v1", asUser(uid, "Tester"))
	{
		api.POST("/moods", moodCtl.CreateMood)
		api.GET("/moods", moodCtl.ListMoods)
		api.GET("/moods/stats", moodCtl.GetStats)
		api.PUT("/moods/:id", moodCtl.UpdateMood)
		api.DELETE("/moods/:id", moodCtl.DeleteMood)

		api.POST("/insights/generate", insightCtl.Generate)
		api.GET("/insights", insightCtl.List)
		api.PUT("/insights/:id/read", insightCtl.MarkRead)

		api.GET("/profile", profileCtl.Me)

		api.POST("/posts", postCtl.CreatePost)
		api.GET("/posts", postCtl.ListPosts)
		api.GET("/posts/my", postCtl.ListMyPosts)
		api.POST("/posts/:id/like", postCtl.ToggleLike)
		api.DELETE("/posts/:id", postCtl.DeletePost)
		api.POST("/posts/:id/report", postCtl.ReportPost)

		api.GET("/tools", toolCtl.ListTools)
		api.GET("/tools/meta/categories", toolCtl.ListCategories)
		api.GET("/tools/:id", toolCtl.GetTool)
		api.POST("/tools/seed", toolCtl.SeedTools)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	env := decodeEnvelope(t, w)
	data, _ := env["data"].(map[string]interface{})
	if data == nil {
		t.Fatalf("no data object in %q", w.Body.String())
	}
	return data
}

func checkIn(t *testing.T, r *gin.Engine, score int, emotion string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/moods", gin.H{"score": score, "emotion": emotion})
	if w.Code != http.StatusCreated {
		t.Fatalf("check-in: status=%d body=%s", w.Code, w.Body.String())
	}
}
