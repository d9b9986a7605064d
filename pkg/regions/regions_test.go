package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouting(t *testing.T) {
	tests := []struct {
		region   string
		expected MainRegion
		err      error
	}{
		{region: "americas", expected: "americas"},
		{region: "EUROPE", expected: "europe"},
		{region: "na1", expected: "americas"},
		{region: "kr", expected: "asia"},
		{region: "euw1", expected: "europe"},
		{region: "vn2", expected: "sea"},
		{region: "moon", err: ErrUnknownRegion},
		{region: "", err: ErrUnknownRegion},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			routing, err := Routing(tt.region)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, routing)
		})
	}
}

func TestAccountRouting(t *testing.T) {
	assert.Equal(t, MainRegion("asia"), AccountRouting("sea"))
	assert.Equal(t, MainRegion("europe"), AccountRouting("europe"))
}
