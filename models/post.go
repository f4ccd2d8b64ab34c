package models

import "time"

// Post is an entry on the community feed. Posts are anonymous by default;
// DisplayName is frozen at creation time so later profile edits cannot
// deanonymize old posts.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthorID     string    `gorm:"size:128;index;not null" json:"author_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	IsAnonymous  bool      `gorm:"default:true" json:"is_anonymous"`
	DisplayName  string    `gorm:"size:64" json:"display_name"`
	Likes        int       `gorm:"default:0" json:"likes"`
	LikedBy      []string  `gorm:"type:text;serializer:json" json:"liked_by"`
	RepliesCount int       `gorm:"default:0" json:"replies_count"`
	IsModerated  bool      `gorm:"default:false" json:"is_moderated"`
	IsDeleted    bool      `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Report records that a user flagged a community post for moderation.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	ReportedBy string    `gorm:"size:128;not null" json:"reported_by"`
	CreatedAt  time.Time `json:"created_at"`
}
