package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/serenspace/serenspace/models"
)

// GormMoodRepo is the MySQL-backed MoodRepo.
type GormMoodRepo struct {
	db *gorm.DB
}

// NewMoodRepo creates a mood repository over db.
func NewMoodRepo(db *gorm.DB) *GormMoodRepo {
	return &GormMoodRepo{db: db}
}

func (r *GormMoodRepo) Create(ctx context.Context, mood *models.Mood) error {
	return r.db.WithContext(ctx).Create(mood).Error
}

func (r *GormMoodRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]models.Mood, error) {
	var moods []models.Mood
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&moods).Error
	return moods, err
}

func (r *GormMoodRepo) AllByUser(ctx context.Context, userID string) ([]models.Mood, error) {
	var moods []models.Mood
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&moods).Error
	return moods, err
}

func (r *GormMoodRepo) Recent(ctx context.Context, userID string, limit int) ([]models.Mood, error) {
	var moods []models.Mood
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&moods).Error
	return moods, err
}

func (r *GormMoodRepo) UpdateOwned(ctx context.Context, id uint, ownerID string, apply func(m *models.Mood)) (*models.Mood, error) {
	var mood models.Mood
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&mood).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		apply(&mood)
		mood.UpdatedAt = time.Now()
		return tx.Save(&mood).Error
	})
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

func (r *GormMoodRepo) DeleteOwned(ctx context.Context, id uint, ownerID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Mood{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
