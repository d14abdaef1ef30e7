package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/repository"
	"gorm.io/gorm"
)

type TradeService interface {
	Execute(ctx context.Context, tokenID string, userID uint64, tradeType string, quantity, pricePerUnit float64) (*model.Trade, error)
	ListByToken(ctx context.Context, tokenID string, limit int) ([]model.Trade, error)
}

type tradeService struct {
	tokens repository.TokenRepository
	trades repository.TradeRepository
}

func NewTradeService(tokens repository.TokenRepository, trades repository.TradeRepository) TradeService {
	return &tradeService{tokens: tokens, trades: trades}
}

// Execute validates and appends one buy/sell ledger entry. The total is
// always quantity * pricePerUnit computed here; client-supplied totals are
// never read.
func (s *tradeService) Execute(ctx context.Context, tokenID string, userID uint64, tradeType string, quantity, pricePerUnit float64) (*model.Trade, error) {
	tt := model.TradeType(tradeType)
	if tt != model.TradeTypeBuy && tt != model.TradeTypeSell {
		return nil, fmt.Errorf("%w: trade_type must be 'buy' or 'sell'", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if pricePerUnit <= 0 {
		return nil, fmt.Errorf("%w: price_per_unit must be positive", ErrValidation)
	}

	token, err := s.tokens.FindByTokenID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	delta := quantity
	if tt == model.TradeTypeSell {
		held, err := s.trades.ShareQuantity(ctx, token.ID, userID)
		if err != nil {
			return nil, err
		}
		if held < quantity {
			return nil, ErrInsufficientHoldings
		}
		delta = -quantity
	} else {
		total, err := s.trades.TotalShares(ctx, token.ID)
		if err != nil {
			return nil, err
		}
		if total+quantity > repository.ShareCap {
			return nil, fmt.Errorf("%w: token shares cannot exceed %.0f%%", ErrConflict, repository.ShareCap)
		}
	}

	trade := &model.Trade{
		TokenID:      token.ID,
		UserID:       userID,
		TradeType:    tt,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		TotalValue:   quantity * pricePerUnit,
	}
	if err := s.trades.Execute(ctx, trade, delta); err != nil {
		// The conditional share update lost a race with a concurrent sell.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInsufficientHoldings
		}
		// The in-transaction cap check lost a race with a concurrent buy.
		if errors.Is(err, repository.ErrShareCapExceeded) {
			return nil, fmt.Errorf("%w: token shares cannot exceed %.0f%%", ErrConflict, repository.ShareCap)
		}
		return nil, err
	}
	return trade, nil
}

func (s *tradeService) ListByToken(ctx context.Context, tokenID string, limit int) ([]model.Trade, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 100 {
		limit = 100
	}
	token, err := s.tokens.FindByTokenID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.trades.ListByToken(ctx, token.ID, limit)
}
