package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/repos"
	"github.com/serenspace/serenspace/services"
	"github.com/serenspace/serenspace/utils"
)

// MoodController manages check-in entries and their statistics.
type MoodController struct {
	moods    repos.MoodRepo
	profiles repos.ProfileRepo
	tracker  *services.StreakTracker
}

// NewMoodController creates a new MoodController instance.
func NewMoodController(moods repos.MoodRepo, profiles repos.ProfileRepo, tracker *services.StreakTracker) *MoodController {
	return &MoodController{moods: moods, profiles: profiles, tracker: tracker}
}

type moodRequest struct {
	Score   int      `json:"score"`
	Emotion string   `json:"emotion"`
	Note    string   `json:"note"`
	Tags    []string `json:"tags"`
}

// CreateMood records a check-in. The mood row is the durable source of truth;
// the streak update that follows is best-effort and never fails the request.
func (m *MoodController) CreateMood(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req moodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	if req.Score < 1 || req.Score > 10 {
		utils.Error(ctx, http.StatusBadRequest, 40021, "score must be between 1 and 10")
		return
	}
	if req.Emotion == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "emotion is required")
		return
	}
	emotion := models.Emotion(req.Emotion)
	if !models.ValidEmotion(emotion) {
		utils.Error(ctx, http.StatusBadRequest, 40023, "unknown emotion")
		return
	}

	tags := utils.UniqueStrings(req.Tags)

	mood := models.Mood{
		UserID:  userID,
		Score:   req.Score,
		Emotion: emotion,
		Note:    utils.Sanitize(req.Note),
		Tags:    tags,
	}

	if err := m.moods.Create(ctx.Request.Context(), &mood); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create mood entry")
		return
	}

	// Secondary writes: profile row and streak counters. Failures are logged
	// and swallowed so the recorded check-in still succeeds.
	reqCtx := ctx.Request.Context()
	if err := m.profiles.Ensure(reqCtx, userID); err != nil {
		utils.Sugar.Warnf("ensure profile failed uid=%s err=%v", userID, err)
	} else if err := m.tracker.RecordCheckIn(reqCtx, userID); err != nil {
		utils.Sugar.Warnf("streak update failed uid=%s err=%v", userID, err)
	}

	utils.Respond(ctx, http.StatusCreated, 0, "mood entry created", gin.H{"mood": mood})
}

// ListMoods returns the user's entries within a day window, newest first.
func (m *MoodController) ListMoods(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	days := 30
	if raw := ctx.Query("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		}
	}
	since := time.Now().Add(-time.Duration(days) * 24 * time.Hour)

	moods, err := m.moods.ListSince(ctx.Request.Context(), userID, since)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to fetch moods")
		return
	}

	utils.Success(ctx, gin.H{"items": moods})
}

// GetStats summarizes every entry the user has ever recorded. Unlike the
// history listing there is deliberately no time window here.
func (m *MoodController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	moods, err := m.moods.AllByUser(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to fetch stats")
		return
	}

	utils.Success(ctx, services.ComputeStats(moods))
}

// UpdateMood edits an entry the caller owns.
func (m *MoodController) UpdateMood(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid mood id")
		return
	}

	var req moodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.Score < 1 || req.Score > 10 {
		utils.Error(ctx, http.StatusBadRequest, 40021, "score must be between 1 and 10")
		return
	}
	emotion := models.Emotion(req.Emotion)
	if !models.ValidEmotion(emotion) {
		utils.Error(ctx, http.StatusBadRequest, 40023, "unknown emotion")
		return
	}

	mood, err := m.moods.UpdateOwned(ctx.Request.Context(), id, userID, func(entry *models.Mood) {
		entry.Score = req.Score
		entry.Emotion = emotion
		entry.Note = utils.Sanitize(req.Note)
		if req.Tags != nil {
			entry.Tags = utils.UniqueStrings(req.Tags)
		}
	})
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "mood entry not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update mood entry")
		return
	}

	utils.Success(ctx, gin.H{"mood": mood})
}

// DeleteMood removes an entry the caller owns.
func (m *MoodController) DeleteMood(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid mood id")
		return
	}

	if err := m.moods.DeleteOwned(ctx.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "mood entry not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to delete mood entry")
		return
	}

	utils.Success(ctx, gin.H{"message": "mood entry deleted"})
}
