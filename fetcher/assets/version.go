package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"riftrewind/fetcher/requests"
)

// Get the latest version of the data from the ddragon.
func (c *ItemCache) fetchLatestVersion(ctx context.Context) (string, error) {
	resp, err := requests.Request(ctx, c.ddragon+"api/versions.json", http.MethodGet)
	if err != nil {
		return "", fmt.Errorf("couldn't get the current version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("versions returned status code %d", resp.StatusCode)
	}

	// Read the version json/array into the version.
	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", fmt.Errorf("couldn't convert the body to json: %w", err)
	}

	if len(versions) == 0 {
		return "", errors.New("no versions available")
	}

	return versions[0], nil
}
