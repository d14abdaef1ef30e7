package model

import "time"

type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// Trade is an immutable ledger entry; TotalValue is always recomputed
// server-side as Quantity * PricePerUnit.
type Trade struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	TokenID      uint64    `gorm:"column:token_id;not null;index"`
	UserID       uint64    `gorm:"column:user_id;not null;index"`
	TradeType    TradeType `gorm:"column:trade_type;size:8;not null"`
	Quantity     float64   `gorm:"not null"`
	PricePerUnit float64   `gorm:"column:price_per_unit;not null"`
	TotalValue   float64   `gorm:"column:total_value;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Trade) TableName() string {
	return "trades"
}
