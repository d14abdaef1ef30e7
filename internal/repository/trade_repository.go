package repository

import (
	"context"
	"errors"

	"github.com/petriapp/petri-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShareCap is the maximum total share percentage outstanding per token.
const ShareCap = 100.0

// ErrShareCapExceeded is returned when a buy would push a token's total
// outstanding shares over ShareCap.
var ErrShareCapExceeded = errors.New("share cap exceeded")

type TradeRepository interface {
	// Execute appends the trade and applies delta to the (token, owner) share
	// row in one transaction. A positive delta re-checks the cap against a
	// locking read of the token's share rows and returns ErrShareCapExceeded
	// on breach. A negative delta uses a conditional update; when the
	// holder's balance is too low the update matches no rows and
	// gorm.ErrRecordNotFound is returned, leaving the ledger untouched.
	Execute(ctx context.Context, trade *model.Trade, delta float64) error
	ListByToken(ctx context.Context, tokenID uint64, limit int) ([]model.Trade, error)
	ShareQuantity(ctx context.Context, tokenID, ownerID uint64) (float64, error)
	TotalShares(ctx context.Context, tokenID uint64) (float64, error)
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Execute(ctx context.Context, trade *model.Trade, delta float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trade).Error; err != nil {
			return err
		}
		if delta >= 0 {
			// Lock the token's share rows so concurrent buys serialize on
			// the cap check instead of both reading the pre-trade total.
			var total float64
			if err := tx.Model(&model.Share{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("token_id = ?", trade.TokenID).
				Select("COALESCE(SUM(quantity), 0)").
				Scan(&total).Error; err != nil {
				return err
			}
			if total+delta > ShareCap {
				return ErrShareCapExceeded
			}
			var share model.Share
			if err := tx.Where("token_id = ? AND owner_id = ?", trade.TokenID, trade.UserID).
				FirstOrCreate(&share, &model.Share{TokenID: trade.TokenID, OwnerID: trade.UserID}).Error; err != nil {
				return err
			}
			return tx.Model(&share).
				Update("quantity", gorm.Expr("quantity + ?", delta)).Error
		}
		res := tx.Model(&model.Share{}).
			Where("token_id = ? AND owner_id = ? AND quantity >= ?", trade.TokenID, trade.UserID, -delta).
			Update("quantity", gorm.Expr("quantity - ?", -delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *tradeRepository) ListByToken(ctx context.Context, tokenID uint64, limit int) ([]model.Trade, error) {
	var trades []model.Trade
	if err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("created_at desc").
		Limit(limit).
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) ShareQuantity(ctx context.Context, tokenID, ownerID uint64) (float64, error) {
	var share model.Share
	err := r.db.WithContext(ctx).
		Where("token_id = ? AND owner_id = ?", tokenID, ownerID).
		First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return share.Quantity, nil
}

func (r *tradeRepository) TotalShares(ctx context.Context, tokenID uint64) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&model.Share{}).
		Where("token_id = ?", tokenID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
