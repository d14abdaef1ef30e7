package model

import (
	"time"

	"gorm.io/datatypes"
)

type TreePersonality struct {
	ID         uint64            `gorm:"primaryKey;autoIncrement"`
	TreeID     uint64            `gorm:"column:tree_id;not null;uniqueIndex:uk_personalities_tree_id"`
	Name       string            `gorm:"size:120;not null"`
	Tone       string            `gorm:"size:32;not null"`
	Background string            `gorm:"type:text"`
	Traits     datatypes.JSONMap `gorm:"type:json"`
	VoiceID    string            `gorm:"column:voice_id;size:64;not null"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime"`
}

func (TreePersonality) TableName() string {
	return "tree_personalities"
}
