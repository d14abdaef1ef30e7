package repository

import (
	"context"

	"github.com/petriapp/petri-backend/internal/model"
	"gorm.io/gorm"
)

type ChatRepository interface {
	// AppendExchange writes the user message and the assistant reply in one
	// transaction so a conversation never contains half an exchange.
	AppendExchange(ctx context.Context, userMsg, assistantMsg *model.ChatMessage) error
	ListByTree(ctx context.Context, treeID uint64, limit int) ([]model.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) AppendExchange(ctx context.Context, userMsg, assistantMsg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		return tx.Create(assistantMsg).Error
	})
}

func (r *chatRepository) ListByTree(ctx context.Context, treeID uint64, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("tree_id = ?", treeID).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
