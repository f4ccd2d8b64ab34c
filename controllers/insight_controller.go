package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/repos"
	"github.com/serenspace/serenspace/services"
	"github.com/serenspace/serenspace/utils"
)

// InsightController exposes insight generation and retrieval.
type InsightController struct {
	aggregator *services.MoodAggregator
}

// NewInsightController creates a new InsightController instance.
func NewInsightController(aggregator *services.MoodAggregator) *InsightController {
	return &InsightController{aggregator: aggregator}
}

// Generate rebuilds the caller's insight batch from recent check-ins. With no
// history it returns an empty list and leaves stored insights untouched.
func (i *InsightController) Generate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	insights, err := i.aggregator.GenerateInsights(ctx.Request.Context(), userID)
	if err != nil {
		utils.Sugar.Errorf("insight generation failed uid=%s err=%v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to generate insights")
		return
	}

	utils.Success(ctx, gin.H{"items": insights})
}

// List returns the caller's current insight batch, newest first.
func (i *InsightController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	insights, err := i.aggregator.ListInsights(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to fetch insights")
		return
	}

	utils.Success(ctx, gin.H{"items": insights})
}

// MarkRead flags one of the caller's insights as read. Ids owned by someone
// else read as not found.
func (i *InsightController) MarkRead(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid insight id")
		return
	}

	if err := i.aggregator.MarkRead(ctx.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "insight not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to mark insight read")
		return
	}

	utils.Success(ctx, gin.H{"message": "insight marked read"})
}
