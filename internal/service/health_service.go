package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/gorm"
)

type HealthService interface {
	// RecordEvent appends a health event, recomputes the tree's current value
	// and returns the new ledger entry together with the updated tree.
	RecordEvent(ctx context.Context, treeID, userID uint64, healthScore float64, eventType string, description *string) (*model.HealthHistory, *model.Tree, error)
	History(ctx context.Context, treeID, userID uint64, limit int) ([]model.HealthHistory, error)
}

type healthService struct {
	trees  repository.TreeRepository
	tokens repository.TokenRepository
	health repository.HealthRepository
}

func NewHealthService(trees repository.TreeRepository, tokens repository.TokenRepository, health repository.HealthRepository) HealthService {
	return &healthService{trees: trees, tokens: tokens, health: health}
}

func (s *healthService) RecordEvent(ctx context.Context, treeID, userID uint64, healthScore float64, eventType string, description *string) (*model.HealthHistory, *model.Tree, error) {
	if eventType == "" {
		return nil, nil, fmt.Errorf("%w: event_type is required", ErrValidation)
	}
	tree, err := s.trees.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if tree.UserID != userID {
		return nil, nil, ErrForbidden
	}

	baseValue := DefaultBaseValue
	token, err := s.tokens.FindByTree(ctx, treeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	if token != nil {
		baseValue = token.BaseValue
	}

	value := ComputeValue(baseValue, healthScore)
	tree.HealthScore = clampScore(healthScore)
	tree.CurrentValue = value

	entry := &model.HealthHistory{
		TreeID:      treeID,
		HealthScore: tree.HealthScore,
		TokenValue:  value,
		EventType:   eventType,
		Description: description,
	}
	if err := s.health.Append(ctx, tree, entry); err != nil {
		return nil, nil, err
	}
	return entry, tree, nil
}

func (s *healthService) History(ctx context.Context, treeID, userID uint64, limit int) ([]model.HealthHistory, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 100 {
		limit = 100
	}
	tree, err := s.trees.FindByID(ctx, treeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tree.UserID != userID && !tree.IsPublic {
		return nil, ErrForbidden
	}
	return s.health.ListByTree(ctx, treeID, limit)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
