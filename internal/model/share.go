package model

import "time"

// Share tracks fractional ownership of a token as a percentage quantity.
// One row per (token, owner); trades adjust the quantity in place.
type Share struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	TokenID   uint64    `gorm:"column:token_id;not null;uniqueIndex:uk_shares_token_owner"`
	OwnerID   uint64    `gorm:"column:owner_id;not null;uniqueIndex:uk_shares_token_owner"`
	Quantity  float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Share) TableName() string {
	return "shares"
}
