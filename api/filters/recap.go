package filters

import (
	"errors"
	"fmt"
	"strings"

	"riftrewind/pkg/messages"
	"riftrewind/pkg/regions"
)

// ErrInvalidFilter is wrapped by every filter validation error.
var ErrInvalidFilter = errors.New("invalid filter")

// Path parameters of the recap endpoint.
type RecapParams struct {
	Region   string `uri:"region" binding:"required"`
	GameName string `uri:"gameName" binding:"required"`
	GameTag  string `uri:"gameTag" binding:"required"`
}

// RecapFilter identifies the player of a recap.
type RecapFilter struct {
	GameName string
	GameTag  string
	Region   string
	Routing  regions.MainRegion
}

// NewRecapFilter validates the params and resolves the routing value.
func NewRecapFilter(params RecapParams) (*RecapFilter, error) {
	gameName := strings.TrimSpace(params.GameName)
	gameTag := strings.TrimPrefix(strings.TrimSpace(params.GameTag), "#")
	if gameName == "" || gameTag == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, messages.MissingRiotId)
	}

	routing, err := regions.Routing(params.Region)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.InvalidRegion, ErrInvalidFilter, params.Region)
	}

	return &RecapFilter{
		GameName: gameName,
		GameTag:  gameTag,
		Region:   strings.ToLower(strings.TrimSpace(params.Region)),
		Routing:  routing,
	}, nil
}

// UniqueID is the player key, case insensitive.
func (f *RecapFilter) UniqueID() string {
	return fmt.Sprintf("%s_%s_%s",
		strings.ToLower(f.GameName),
		strings.ToLower(f.GameTag),
		f.Region,
	)
}
