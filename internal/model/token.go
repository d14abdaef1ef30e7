package model

import "time"

// Token is the minted NFT record for a tree. The tree linkage is 1:1 and
// permanent; the owner may diverge from the tree's planter after trades.
type Token struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	TokenID      string    `gorm:"column:token_id;size:64;not null;uniqueIndex:uk_tokens_token_id"`
	TreeID       uint64    `gorm:"column:tree_id;not null;uniqueIndex:uk_tokens_tree_id"`
	OwnerID      uint64    `gorm:"column:owner_id;not null;index"`
	MetadataURI  *string   `gorm:"column:metadata_uri;size:512"`
	ImageURI     *string   `gorm:"column:image_uri;size:512"`
	BaseValue    float64   `gorm:"column:base_value;not null;default:100"`
	CurrentValue float64   `gorm:"column:current_value;not null;default:100"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Token) TableName() string {
	return "tokens"
}
