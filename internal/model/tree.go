package model

import "time"

type TreeSpecies string

const (
	SpeciesOak    TreeSpecies = "oak"
	SpeciesPine   TreeSpecies = "pine"
	SpeciesBirch  TreeSpecies = "birch"
	SpeciesMaple  TreeSpecies = "maple"
	SpeciesElm    TreeSpecies = "elm"
	SpeciesSpruce TreeSpecies = "spruce"
)

// ValidSpecies reports whether s is one of the supported planting species.
func ValidSpecies(s TreeSpecies) bool {
	switch s {
	case SpeciesOak, SpeciesPine, SpeciesBirch, SpeciesMaple, SpeciesElm, SpeciesSpruce:
		return true
	}
	return false
}

type Tree struct {
	ID           uint64      `gorm:"primaryKey;autoIncrement"`
	UserID       uint64      `gorm:"column:user_id;not null;index;uniqueIndex:uk_trees_user_nickname"`
	Species      TreeSpecies `gorm:"size:32;not null"`
	Latitude     float64     `gorm:"not null"`
	Longitude    float64     `gorm:"not null"`
	LocationName *string     `gorm:"column:location_name;size:255"`
	Nickname     *string     `gorm:"size:120;uniqueIndex:uk_trees_user_nickname"`
	Description  *string     `gorm:"type:text"`
	PhotoURL     *string     `gorm:"column:photo_url;size:512"`
	IsPublic     bool        `gorm:"column:is_public;not null;default:false"`
	HealthScore  float64     `gorm:"column:health_score;not null;default:100"`
	CurrentValue float64     `gorm:"column:current_value;not null;default:100"`
	PlantedAt    time.Time   `gorm:"column:planted_at;autoCreateTime"`
	CreatedAt    time.Time   `gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime"`
}

func (Tree) TableName() string {
	return "trees"
}
