package repository

import (
	"context"

	"github.com/petriapp/petri-backend/internal/model"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	FindByTokenID(ctx context.Context, tokenID string) (*model.Token, error)
	FindByTree(ctx context.Context, treeID uint64) (*model.Token, error)
	ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Token, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByTokenID(ctx context.Context, tokenID string) (*model.Token, error) {
	var token model.Token
	if err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByTree(ctx context.Context, treeID uint64) (*model.Token, error) {
	var token model.Token
	if err := r.db.WithContext(ctx).
		Where("tree_id = ?", treeID).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Token, error) {
	var tokens []model.Token
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
