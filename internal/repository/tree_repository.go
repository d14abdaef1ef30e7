package repository

import (
	"context"

	"github.com/petriapp/petri-backend/internal/model"
	"gorm.io/gorm"
)

type TreeRepository interface {
	Create(ctx context.Context, tree *model.Tree) error
	FindByID(ctx context.Context, id uint64) (*model.Tree, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Tree, int64, error)
	ListPublic(ctx context.Context, limit, offset int) ([]model.Tree, error)
	CountNickname(ctx context.Context, userID uint64, nickname string) (int64, error)
	SetVisibility(ctx context.Context, treeID uint64, public bool) error
}

type treeRepository struct {
	db *gorm.DB
}

func NewTreeRepository(db *gorm.DB) TreeRepository {
	return &treeRepository{db: db}
}

func (r *treeRepository) Create(ctx context.Context, tree *model.Tree) error {
	return r.db.WithContext(ctx).Create(tree).Error
}

func (r *treeRepository) FindByID(ctx context.Context, id uint64) (*model.Tree, error) {
	var tree model.Tree
	if err := r.db.WithContext(ctx).First(&tree, id).Error; err != nil {
		return nil, err
	}
	return &tree, nil
}

func (r *treeRepository) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Tree, int64, error) {
	var (
		trees []model.Tree
		total int64
	)
	if err := r.db.WithContext(ctx).
		Model(&model.Tree{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&trees).Error; err != nil {
		return nil, 0, err
	}
	return trees, total, nil
}

func (r *treeRepository) ListPublic(ctx context.Context, limit, offset int) ([]model.Tree, error) {
	var trees []model.Tree
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&trees).Error; err != nil {
		return nil, err
	}
	return trees, nil
}

func (r *treeRepository) CountNickname(ctx context.Context, userID uint64, nickname string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Tree{}).
		Where("user_id = ? AND nickname = ?", userID, nickname).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *treeRepository) SetVisibility(ctx context.Context, treeID uint64, public bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Tree{}).
		Where("id = ?", treeID).
		Update("is_public", public).Error
}
