package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/serenspace/serenspace/models"
)

// GormInsightRepo is the MySQL-backed InsightRepo.
type GormInsightRepo struct {
	db *gorm.DB
}

// NewInsightRepo creates an insight repository over db.
func NewInsightRepo(db *gorm.DB) *GormInsightRepo {
	return &GormInsightRepo{db: db}
}

// ReplaceForUser swaps the user's insight batch inside one transaction, so a
// failed insert rolls the delete back instead of leaving a partial batch.
func (r *GormInsightRepo) ReplaceForUser(ctx context.Context, userID string, batch []models.Insight) ([]models.Insight, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Insight{}).Error; err != nil {
			return err
		}
		for i := range batch {
			if err := tx.Create(&batch[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *GormInsightRepo) ListByUser(ctx context.Context, userID string) ([]models.Insight, error) {
	var insights []models.Insight
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&insights).Error
	return insights, err
}

func (r *GormInsightRepo) MarkRead(ctx context.Context, id uint, ownerID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Insight{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
