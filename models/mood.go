package models

import "time"

// Emotion is the fixed set of feelings a check-in can carry.
type Emotion string

const (
	EmotionJoyful   Emotion = "joyful"
	EmotionHappy    Emotion = "happy"
	EmotionCalm     Emotion = "calm"
	EmotionNeutral  Emotion = "neutral"
	EmotionAnxious  Emotion = "anxious"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionStressed Emotion = "stressed"
)

// Emotions lists every valid emotion in declaration order. The order matters:
// mood statistics break top-emotion ties by picking the earliest entry here.
var Emotions = []Emotion{
	EmotionJoyful,
	EmotionHappy,
	EmotionCalm,
	EmotionNeutral,
	EmotionAnxious,
	EmotionSad,
	EmotionAngry,
	EmotionStressed,
}

// ValidEmotion reports whether e is one of the known emotions.
func ValidEmotion(e Emotion) bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// Mood is a single check-in entry recorded by a user.
type Mood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:128;index;not null" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"`
	Emotion   Emotion   `gorm:"size:16;not null" json:"emotion"`
	Note      string    `gorm:"type:text" json:"note"`
	Tags      []string  `gorm:"type:text;serializer:json" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
