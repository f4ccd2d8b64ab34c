package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serenspace/serenspace/models"
)

// GormProfileRepo is the MySQL-backed ProfileRepo.
type GormProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates a profile repository over db.
func NewProfileRepo(db *gorm.DB) *GormProfileRepo {
	return &GormProfileRepo{db: db}
}

// Ensure inserts a zeroed profile when uid has none yet. Existing rows are
// left untouched, counters included.
func (r *GormProfileRepo) Ensure(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.User{UID: uid}).Error
}

func (r *GormProfileRepo) Get(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateStreak serializes concurrent check-ins per user with a SELECT ...
// FOR UPDATE row lock, then writes the streak fields and bumps
// total_check_ins with an in-database increment.
func (r *GormProfileRepo) UpdateStreak(ctx context.Context, uid string, apply func(u *models.User)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := LockForUpdate(tx).
			First(&user, "uid = ?", uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		apply(&user)

		return tx.Model(&models.User{}).Where("uid = ?", uid).Updates(map[string]interface{}{
			"streak_days":     user.StreakDays,
			"last_check_in":   user.LastCheckIn,
			"total_check_ins": gorm.Expr("total_check_ins + ?", 1),
		}).Error
	})
}
