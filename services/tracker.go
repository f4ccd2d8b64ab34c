package services

import (
	"context"
	"errors"
	"time"

	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/repos"
)

// continuationWindow is the maximum gap between check-ins that still counts
// as consecutive days. Two full days or more resets the streak.
const continuationWindow = 48 * time.Hour

// StreakTracker maintains the profile's check-in counters. Updates are
// best-effort: callers treat a failed streak update as a logged warning, not
// a failed check-in.
type StreakTracker struct {
	profiles repos.ProfileRepo
	now      func() time.Time
}

// NewStreakTracker wires a tracker over the profile repository.
func NewStreakTracker(profiles repos.ProfileRepo) *StreakTracker {
	return &StreakTracker{profiles: profiles, now: time.Now}
}

// RecordCheckIn advances the streak state machine for uid. A missing profile
// is a no-op; creating the row is the caller's job before invoking this.
func (t *StreakTracker) RecordCheckIn(ctx context.Context, uid string) error {
	now := t.now()
	err := t.profiles.UpdateStreak(ctx, uid, func(u *models.User) {
		u.StreakDays = nextStreak(u.LastCheckIn, u.StreakDays, now)
		u.LastCheckIn = &now
	})
	if errors.Is(err, repos.ErrNotFound) {
		return nil
	}
	return err
}

// nextStreak computes the new streak value. Any check-in within 48 hours of
// the previous one increments, which means several check-ins on the same
// calendar day each add a day. That matches the shipped behavior and is
// pinned by tests; a per-day dedup would be a product decision.
func nextStreak(last *time.Time, current int, now time.Time) int {
	if last == nil || now.Sub(*last) >= continuationWindow {
		return 1
	}
	return current + 1
}
