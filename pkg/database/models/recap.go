package models

import (
	"time"

	"gorm.io/datatypes"
)

// Database model for a generated player recap.
// The unique id is the lowercased name, tag and region joined by underscores.
type PlayerRecap struct {
	ID             uint64         `gorm:"primaryKey"`
	UniqueID       string         `gorm:"type:varchar(128);uniqueIndex"`
	Puuid          string         `gorm:"type:varchar(100);index"`
	GameName       string         `gorm:"type:varchar(64)"`
	TagLine        string         `gorm:"type:varchar(16)"`
	Region         string         `gorm:"type:varchar(8)"`
	TotalGames     int
	SkippedMatches int
	Summary        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index"`
}
