package model

import "time"

// HealthHistory is an append-only audit record of a tree's health changes.
// Rows are never updated or deleted; the newest row is authoritative for the
// tree's current health and value.
type HealthHistory struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	TreeID      uint64    `gorm:"column:tree_id;not null;index"`
	HealthScore float64   `gorm:"column:health_score;not null"`
	TokenValue  float64   `gorm:"column:token_value"`
	EventType   string    `gorm:"column:event_type;size:50"` // e.g. "planting", "growth", "drought"
	Description *string   `gorm:"type:text"`
	RecordedAt  time.Time `gorm:"column:recorded_at;autoCreateTime"`
}

func (HealthHistory) TableName() string {
	return "health_history"
}
