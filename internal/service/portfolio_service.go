package service

import (
	"context"
	"errors"

	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/gorm"
)

type PortfolioEntry struct {
	Tree  model.Tree
	Token *model.Token // nil when the tree has not been minted
}

type Portfolio struct {
	Entries    []PortfolioEntry
	TotalTrees int64
	TotalValue float64
}

type PortfolioService interface {
	Get(ctx context.Context, userID uint64) (*Portfolio, error)
}

type portfolioService struct {
	trees  repository.TreeRepository
	tokens repository.TokenRepository
}

func NewPortfolioService(trees repository.TreeRepository, tokens repository.TokenRepository) PortfolioService {
	return &portfolioService{trees: trees, tokens: tokens}
}

func (s *portfolioService) Get(ctx context.Context, userID uint64) (*Portfolio, error) {
	trees, total, err := s.trees.ListByUser(ctx, userID, 100, 0)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Entries:    make([]PortfolioEntry, 0, len(trees)),
		TotalTrees: total,
	}
	for _, tree := range trees {
		entry := PortfolioEntry{Tree: tree}
		token, err := s.tokens.FindByTree(ctx, tree.ID)
		switch {
		case err == nil:
			entry.Token = token
			portfolio.TotalValue += token.CurrentValue
		case errors.Is(err, gorm.ErrRecordNotFound):
			portfolio.TotalValue += tree.CurrentValue
		default:
			return nil, err
		}
		portfolio.Entries = append(portfolio.Entries, entry)
	}
	return portfolio, nil
}
