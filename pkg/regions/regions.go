package regions

import (
	"errors"
	"strings"
)

// Routing values used by the regional endpoints and the platforms inside them.
type (
	MainRegion string
	SubRegion  string
)

// ErrUnknownRegion is returned when the region is not a routing value nor a platform.
var ErrUnknownRegion = errors.New("unknown region")

// List of regions.
var RegionList = map[MainRegion][]SubRegion{
	"AMERICAS": {"BR1", "LA1", "LA2", "NA1"},
	"EUROPE":   {"EUN1", "EUW1", "TR1", "ME1", "RU"},
	"ASIA":     {"KR", "JP1"},
	"SEA":      {"OC1", "SG2", "TW2", "VN2"},
}

// Routing resolves a routing value or a platform to the routing value, in lowercase.
func Routing(region string) (MainRegion, error) {
	upper := strings.ToUpper(strings.TrimSpace(region))

	for main, subRegions := range RegionList {
		if string(main) == upper {
			return MainRegion(strings.ToLower(upper)), nil
		}

		for _, sub := range subRegions {
			if string(sub) == upper {
				return MainRegion(strings.ToLower(string(main))), nil
			}
		}
	}

	return "", ErrUnknownRegion
}

// AccountRouting returns the routing value for the account endpoints.
// The account service isn't served on sea, asia holds those accounts.
func AccountRouting(main MainRegion) MainRegion {
	if main == "sea" {
		return "asia"
	}
	return main
}
