package dto

import (
	"time"

	"riftrewind/pkg/matchstats"
)

// Recap is the year in review of a player.
type Recap struct {
	UniqueID       string              `json:"uniqueId"`
	Puuid          string              `json:"puuid"`
	GameName       string              `json:"gameName"`
	TagLine        string              `json:"tagLine"`
	Region         string              `json:"region"`
	SkippedMatches int                 `json:"skippedMatches"`
	GeneratedAt    time.Time           `json:"generatedAt"`
	Summary        *matchstats.Summary `json:"summary"`
}
