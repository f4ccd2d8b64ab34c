package models

import "time"

// ToolCategory groups coping exercises by kind.
type ToolCategory string

const (
	ToolBreathing  ToolCategory = "breathing"
	ToolMeditation ToolCategory = "meditation"
	ToolGrounding  ToolCategory = "grounding"
	ToolJournaling ToolCategory = "journaling"
	ToolMovement   ToolCategory = "movement"
	ToolCognitive  ToolCategory = "cognitive"
)

// ToolCategories lists every category in presentation order.
var ToolCategories = []ToolCategory{
	ToolBreathing,
	ToolMeditation,
	ToolGrounding,
	ToolJournaling,
	ToolMovement,
	ToolCognitive,
}

// CopingTool is a guided self-help exercise served to the client. The timer
// itself runs client-side; the backend only stores the catalog.
type CopingTool struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string       `gorm:"size:512" json:"description"`
	Category    ToolCategory `gorm:"size:16;index;not null" json:"category"`
	Duration    int          `json:"duration"` // minutes
	Steps       []string     `gorm:"type:text;serializer:json" json:"steps"`
	Tags        []string     `gorm:"type:text;serializer:json" json:"tags"`
	Difficulty  string       `gorm:"size:8;default:'easy'" json:"difficulty"`
	IsPremium   bool         `gorm:"default:false;index" json:"is_premium"`
	CreatedAt   time.Time    `json:"created_at"`
}
