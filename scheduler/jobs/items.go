package jobs

import (
	"context"
	"fmt"
)

// ItemRefresher reloads the item names from the Data Dragon.
type ItemRefresher interface {
	Refresh(ctx context.Context) error
	Len() int
	Version() string
}

// RefreshItems shares the latest items with the API instances.
func RefreshItems(items ItemRefresher, logger Logger) error {
	logger.Infof("Starting item cache revalidation")

	ctx, cancel := jobContext()
	defer cancel()

	if err := items.Refresh(ctx); err != nil {
		logger.Errorf("Error revalidating item cache: %v", err)
		return fmt.Errorf("couldn't refresh the items: %w", err)
	}

	logger.Infof("Item cache revalidation completed with %d items of version %s", items.Len(), items.Version())
	return nil
}
