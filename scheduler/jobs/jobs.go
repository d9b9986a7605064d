package jobs

import (
	"context"
	"time"
)

// Logger used by the jobs.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Default timeout of a single job run.
const jobTimeout = 10 * time.Minute

func jobContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), jobTimeout)
}
