package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/utils"
)

// ToolController serves the coping exercise catalog. The catalog is small and
// read-mostly, so list responses are cached in Redis.
type ToolController struct {
	db *gorm.DB
}

// NewToolController creates a new ToolController instance.
func NewToolController(db *gorm.DB) *ToolController {
	return &ToolController{db: db}
}

// ListTools returns non-premium tools, optionally filtered by category and
// difficulty.
func (t *ToolController) ListTools(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))
	difficulty := strings.TrimSpace(ctx.Query("difficulty"))

	cacheKey := fmt.Sprintf("cache:tools:list:cat=%s:diff=%s", category, difficulty)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	query := t.db.Where("is_premium = ?", false)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var tools []models.CopingTool
	if err := query.Order("id ASC").Find(&tools).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to fetch tools")
		return
	}

	payload := gin.H{"items": tools}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// ListCategories returns the fixed category list for the tools browser.
func (t *ToolController) ListCategories(ctx *gin.Context) {
	items := make([]gin.H, 0, len(models.ToolCategories))
	for _, c := range models.ToolCategories {
		items = append(items, gin.H{
			"id":   string(c),
			"name": strings.ToUpper(string(c)[:1]) + string(c)[1:],
		})
	}
	utils.Success(ctx, items)
}

// GetTool returns a single tool by id.
func (t *ToolController) GetTool(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid tool id")
		return
	}

	var tool models.CopingTool
	if err := t.db.First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40404, "tool not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to fetch tool")
		return
	}

	utils.Success(ctx, gin.H{"tool": tool})
}

// SeedTools loads the default exercise catalog. Titles are unique, so
// reseeding is idempotent.
func (t *ToolController) SeedTools(ctx *gin.Context) {
	tools := DefaultTools()
	if err := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tools).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to seed tools")
		return
	}

	utils.InvalidateByPrefix("cache:tools:list:")
	utils.Success(ctx, gin.H{"message": "tools seeded"})
}

// DefaultTools is the built-in coping exercise catalog.
func DefaultTools() []models.CopingTool {
	return []models.CopingTool{
		{
			Title:       "4-7-8 Breathing",
			Description: "Calms anxiety and helps you relax",
			Category:    models.ToolBreathing,
			Duration:    3,
			Steps: []string{
				"Inhale for 4 seconds",
				"Hold for 7 seconds",
				"Exhale for 8 seconds",
				"Repeat 4 times",
			},
			Tags:       []string{"stress", "anxiety"},
			Difficulty: "easy",
		},
		{
			Title:       "Box Breathing",
			Description: "Improve focus and calm",
			Category:    models.ToolBreathing,
			Duration:    5,
			Steps: []string{
				"Inhale 4 sec",
				"Hold 4 sec",
				"Exhale 4 sec",
				"Hold 4 sec",
			},
			Tags:       []string{"focus"},
			Difficulty: "easy",
		},
		{
			Title:       "5-4-3-2-1 Grounding",
			Description: "Ground yourself using senses",
			Category:    models.ToolGrounding,
			Duration:    5,
			Steps: []string{
				"5 things you see",
				"4 things you feel",
				"3 things you hear",
				"2 things you smell",
				"1 thing you taste",
			},
			Tags:       []string{"panic"},
			Difficulty: "easy",
		},
		{
			Title:       "Gratitude Journaling",
			Description: "Write 3 things you're grateful for",
			Category:    models.ToolJournaling,
			Duration:    10,
			Steps:       []string{"Write 3 good things today"},
			Tags:        []string{"positivity"},
			Difficulty:  "easy",
		},
		{
			Title:       "Stretching",
			Description: "Light body movement",
			Category:    models.ToolMovement,
			Duration:    10,
			Steps:       []string{"Stretch arms", "Stretch legs"},
			Tags:        []string{"relax"},
			Difficulty:  "easy",
		},
		{
			Title:       "Thought Reframing",
			Description: "Change negative thoughts",
			Category:    models.ToolCognitive,
			Duration:    10,
			Steps: []string{
				"Identify negative thought",
				"Replace with balanced thought",
			},
			Tags:       []string{"cbt"},
			Difficulty: "medium",
		},
	}
}
