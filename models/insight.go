package models

import "time"

// InsightType classifies a generated insight.
type InsightType string

const (
	InsightTrend      InsightType = "trend"
	InsightPattern    InsightType = "pattern"
	InsightSuggestion InsightType = "suggestion"
	InsightMilestone  InsightType = "milestone"
	InsightAlert      InsightType = "alert"
)

// MoodTrend is the direction a user's mood is heading over the insight period.
type MoodTrend string

const (
	TrendImproving MoodTrend = "improving"
	TrendStable    MoodTrend = "stable"
	TrendDeclining MoodTrend = "declining"
)

// InsightData is the computed payload attached to each insight.
type InsightData struct {
	Period      string    `json:"period"`
	AverageMood float64   `json:"average_mood"`
	MoodTrend   MoodTrend `json:"mood_trend"`
	TopEmotions []string  `json:"top_emotions"`
	Triggers    []string  `json:"triggers,omitempty"`
}

// Insight is a short-lived derived summary of a user's recent mood history.
// Each generation run replaces the user's whole batch; ExpiresAt is advisory
// metadata only, no sweeper removes expired rows.
type Insight struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      string      `gorm:"size:128;index;not null" json:"user_id"`
	Type        InsightType `gorm:"size:16;not null" json:"type"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Data        InsightData `gorm:"type:text;serializer:json" json:"data"`
	IsRead      bool        `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}
