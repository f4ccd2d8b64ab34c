package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds the per-user wellness profile keyed by the identity provider's
// uid. Counters start at zero and the row is created lazily on the first
// check-in; nothing in the backend ever deletes it.
type User struct {
	UID           string     `gorm:"primaryKey;size:128" json:"uid"`
	StreakDays    int        `gorm:"default:0" json:"streak_days"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	TotalCheckIns int        `gorm:"default:0" json:"total_check_ins"`
	LastCheckIn   *time.Time `json:"last_check_in"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
