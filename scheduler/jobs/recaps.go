package jobs

import (
	"context"
	"fmt"
	"time"
)

// RecapPurger removes the stored recaps.
type RecapPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeRecaps deletes the recaps not regenerated within the retention, they are rebuilt on the next request.
// A zero retention keeps every recap.
func PurgeRecaps(repository RecapPurger, retention time.Duration, logger Logger) error {
	if retention <= 0 {
		logger.Infof("Recap retention disabled, skipping the purge")
		return nil
	}

	ctx, cancel := jobContext()
	defer cancel()

	cutoff := time.Now().Add(-retention)
	deleted, err := repository.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Errorf("Error purging the recaps: %v", err)
		return fmt.Errorf("couldn't purge the recaps: %w", err)
	}

	logger.Infof("Purged %d recaps older than %s", deleted, cutoff.Format(time.RFC3339))
	return nil
}
