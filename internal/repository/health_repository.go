package repository

import (
	"context"

	"github.com/petriapp/petri-backend/internal/model"
	"gorm.io/gorm"
)

type HealthRepository interface {
	// Append persists one health event atomically: the tree's current
	// health/value, the token's current value when one is minted, and the
	// new history row commit or roll back together.
	Append(ctx context.Context, tree *model.Tree, entry *model.HealthHistory) error
	ListByTree(ctx context.Context, treeID uint64, limit int) ([]model.HealthHistory, error)
	LatestByTree(ctx context.Context, treeID uint64) (*model.HealthHistory, error)
}

type healthRepository struct {
	db *gorm.DB
}

func NewHealthRepository(db *gorm.DB) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) Append(ctx context.Context, tree *model.Tree, entry *model.HealthHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Tree{}).
			Where("id = ?", tree.ID).
			Updates(map[string]interface{}{
				"health_score":  tree.HealthScore,
				"current_value": tree.CurrentValue,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Token{}).
			Where("tree_id = ?", tree.ID).
			Update("current_value", tree.CurrentValue).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *healthRepository) ListByTree(ctx context.Context, treeID uint64, limit int) ([]model.HealthHistory, error) {
	var entries []model.HealthHistory
	if err := r.db.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("recorded_at desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *healthRepository) LatestByTree(ctx context.Context, treeID uint64) (*model.HealthHistory, error) {
	var entry model.HealthHistory
	if err := r.db.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("recorded_at desc").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
