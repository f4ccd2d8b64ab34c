package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/repos"
)

// recentWindow caps how many entries feed a generation run.
const recentWindow = 50

// insightTTL is how long a generated batch stays valid. ExpiresAt is advisory
// metadata; nothing sweeps expired rows.
const insightTTL = 7 * 24 * time.Hour

// Stats are the point statistics computed over a user's mood entries.
type Stats struct {
	AverageScore float64 `json:"average_score"`
	TotalEntries int     `json:"total_entries"`
	TopEmotion   string  `json:"top_emotion"`
	Trend        string  `json:"trend"`
}

// MoodAggregator turns a user's stored mood entries into summary statistics
// and a replaceable batch of insight records.
type MoodAggregator struct {
	moods    repos.MoodRepo
	insights repos.InsightRepo
	now      func() time.Time
}

// NewMoodAggregator wires an aggregator over the given repositories.
func NewMoodAggregator(moods repos.MoodRepo, insights repos.InsightRepo) *MoodAggregator {
	return &MoodAggregator{moods: moods, insights: insights, now: time.Now}
}

// ComputeStats summarizes entries. The zero-entry shape is fixed: average 0,
// no top emotion, trend "stable". Trend is currently always "stable"; no
// time-series regression runs even though the field admits other values.
func ComputeStats(entries []models.Mood) Stats {
	if len(entries) == 0 {
		return Stats{AverageScore: 0, TotalEntries: 0, TopEmotion: "", Trend: string(models.TrendStable)}
	}
	return Stats{
		AverageScore: averageScore(entries),
		TotalEntries: len(entries),
		TopEmotion:   string(topEmotion(entries)),
		Trend:        string(models.TrendStable),
	}
}

// averageScore is the arithmetic mean rounded half-up at the tenths digit.
func averageScore(entries []models.Mood) float64 {
	sum := 0
	for _, e := range entries {
		sum += e.Score
	}
	avg := float64(sum) / float64(len(entries))
	return math.Round(avg*10) / 10
}

// topEmotion returns the most frequent emotion. Ties go to whichever emotion
// comes first in models.Emotions declaration order, which keeps the result
// deterministic regardless of entry order.
func topEmotion(entries []models.Mood) models.Emotion {
	counts := make(map[models.Emotion]int, len(models.Emotions))
	for _, e := range entries {
		counts[e.Emotion]++
	}
	var best models.Emotion
	bestCount := 0
	for _, emotion := range models.Emotions {
		if counts[emotion] > bestCount {
			best = emotion
			bestCount = counts[emotion]
		}
	}
	return best
}

// GenerateInsights rebuilds the user's insight batch from their most recent
// check-ins. With no recent entries it returns an empty slice and leaves any
// existing insights alone; otherwise the previous batch is fully replaced by
// exactly three fresh records. Concurrent generation requests are last
// requester wins.
func (a *MoodAggregator) GenerateInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	recent, err := a.moods.Recent(ctx, userID, recentWindow)
	if err != nil {
		return nil, fmt.Errorf("load recent moods: %w", err)
	}
	if len(recent) == 0 {
		return []models.Insight{}, nil
	}

	avg := averageScore(recent)
	top := topEmotion(recent)

	now := a.now()
	expires := now.Add(insightTTL)
	data := models.InsightData{
		AverageMood: avg,
		MoodTrend:   models.TrendStable,
		TopEmotions: []string{string(top)},
	}

	trendData := data
	trendData.Period = "30d"
	patternData := data
	patternData.Period = "30d"
	suggestionData := data
	suggestionData.Period = "today"

	batch := []models.Insight{
		{
			UserID:      userID,
			Type:        models.InsightTrend,
			Title:       "Mood Summary",
			Description: fmt.Sprintf("Your average mood score is %.1f", avg),
			Data:        trendData,
			CreatedAt:   now,
			ExpiresAt:   expires,
		},
		{
			UserID:      userID,
			Type:        models.InsightPattern,
			Title:       "Emotion Pattern",
			Description: fmt.Sprintf("You often feel %s in recent check-ins", top),
			Data:        patternData,
			CreatedAt:   now,
			ExpiresAt:   expires,
		},
		{
			UserID:      userID,
			Type:        models.InsightSuggestion,
			Title:       "Try This Today",
			Description: "Try a 5-minute breathing or grounding exercise",
			Data:        suggestionData,
			CreatedAt:   now,
			ExpiresAt:   expires,
		},
	}

	saved, err := a.insights.ReplaceForUser(ctx, userID, batch)
	if err != nil {
		return nil, fmt.Errorf("replace insights: %w", err)
	}
	return saved, nil
}

// ListInsights returns the user's current batch, newest first.
func (a *MoodAggregator) ListInsights(ctx context.Context, userID string) ([]models.Insight, error) {
	return a.insights.ListByUser(ctx, userID)
}

// MarkRead flags one of the caller's insights as read. The owner check lives
// in the repository so a foreign id reads as not found.
func (a *MoodAggregator) MarkRead(ctx context.Context, id uint, ownerID string) error {
	return a.insights.MarkRead(ctx, id, ownerID)
}
