package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/repos"
	"github.com/serenspace/serenspace/utils"
)

// ProfileController serves the caller's streak profile.
type ProfileController struct {
	profiles repos.ProfileRepo
}

// NewProfileController creates a new ProfileController instance.
func NewProfileController(profiles repos.ProfileRepo) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// Me returns the caller's check-in counters. A user who has never checked in
// gets zeroed counters rather than a 404, so the dashboard can render.
func (p *ProfileController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	profile, err := p.profiles.Get(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			utils.Success(ctx, gin.H{
				"uid":             userID,
				"streak_days":     0,
				"longest_streak":  0,
				"total_check_ins": 0,
				"last_check_in":   nil,
			})
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load profile")
		return
	}

	utils.Success(ctx, gin.H{
		"uid":             profile.UID,
		"streak_days":     profile.StreakDays,
		"longest_streak":  profile.LongestStreak,
		"total_check_ins": profile.TotalCheckIns,
		"last_check_in":   profile.LastCheckIn,
	})
}
