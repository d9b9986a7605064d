package assets

import "time"

// Consts used across the package.
const (
	DefaultDDragon  = "https://ddragon.leagueoflegends.com/"
	DefaultLanguage = "en_US"
	DefaultItemsTTL = 24 * time.Hour

	versionKey = "ddragon:version"
	itemPrefix = "ddragon:item:"
)

// Definition for extracting the item data.
type fullItem struct {
	Data map[string]map[string]any `json:"data"`
}
