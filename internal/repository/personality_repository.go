package repository

import (
	"context"
	"errors"

	"github.com/petriapp/petri-backend/internal/model"
	"gorm.io/gorm"
)

type PersonalityRepository interface {
	Upsert(ctx context.Context, p *model.TreePersonality) error
	FindByTree(ctx context.Context, treeID uint64) (*model.TreePersonality, error)
}

type personalityRepository struct {
	db *gorm.DB
}

func NewPersonalityRepository(db *gorm.DB) PersonalityRepository {
	return &personalityRepository{db: db}
}

func (r *personalityRepository) Upsert(ctx context.Context, p *model.TreePersonality) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TreePersonality
		err := tx.Where("tree_id = ?", p.TreeID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(p).Error
			}
			return err
		}
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		return tx.Save(p).Error
	})
}

func (r *personalityRepository) FindByTree(ctx context.Context, treeID uint64) (*model.TreePersonality, error) {
	var p model.TreePersonality
	if err := r.db.WithContext(ctx).
		Where("tree_id = ?", treeID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
