package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenspace/serenspace/models"
)

// ErrNotFound is returned when a record does not exist or is not owned by the
// caller. Handlers map both cases to 404 so record ids cannot be probed.
var ErrNotFound = errors.New("record not found")

// LockForUpdate applies a SELECT ... FOR UPDATE clause on dialects that have
// one. SQLite (the test database) locks the whole file per transaction and
// rejects the clause, so it is skipped there.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// MoodRepo persists check-in entries.
type MoodRepo interface {
	Create(ctx context.Context, mood *models.Mood) error
	// ListSince returns the user's moods created at or after since,
	// newest first.
	ListSince(ctx context.Context, userID string, since time.Time) ([]models.Mood, error)
	// AllByUser returns every mood the user has recorded, unordered.
	// The stats path deliberately applies no time window.
	AllByUser(ctx context.Context, userID string) ([]models.Mood, error)
	// Recent returns up to limit of the user's newest moods.
	Recent(ctx context.Context, userID string, limit int) ([]models.Mood, error)
	// UpdateOwned saves mutable fields of the mood identified by id, failing
	// with ErrNotFound when it does not exist or belongs to someone else.
	UpdateOwned(ctx context.Context, id uint, ownerID string, apply func(m *models.Mood)) (*models.Mood, error)
	DeleteOwned(ctx context.Context, id uint, ownerID string) error
}

// InsightRepo persists generated insight batches.
type InsightRepo interface {
	// ReplaceForUser atomically deletes every insight the user owns and
	// inserts the new batch. Nothing is written when the delete fails.
	ReplaceForUser(ctx context.Context, userID string, batch []models.Insight) ([]models.Insight, error)
	ListByUser(ctx context.Context, userID string) ([]models.Insight, error)
	// MarkRead flips is_read on an insight the owner holds; ErrNotFound on
	// a missing id or an owner mismatch.
	MarkRead(ctx context.Context, id uint, ownerID string) error
}

// ProfileRepo persists the per-user streak profile.
type ProfileRepo interface {
	// Ensure creates a zeroed profile row for uid when none exists.
	Ensure(ctx context.Context, uid string) error
	Get(ctx context.Context, uid string) (*models.User, error)
	// UpdateStreak loads the profile under a row lock, lets apply mutate
	// StreakDays/LastCheckIn, then persists those fields together with an
	// atomic increment of TotalCheckIns. ErrNotFound when no profile exists.
	UpdateStreak(ctx context.Context, uid string, apply func(u *models.User)) error
}
