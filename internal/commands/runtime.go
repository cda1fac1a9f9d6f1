package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// DefaultBuildTimeout bounds one command, which for a build means every
// article of the project.
const DefaultBuildTimeout = 5 * time.Minute

// Clock reports the current time.
type Clock func() time.Time

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// withDeadline leaves ctx alone when timeout is not positive.
func withDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

// EnsureLogger substitutes the no-op logger for nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger != nil {
		return logger
	}
	return logging.NoOp()
}

func ensureClock(clock Clock) Clock {
	if clock != nil {
		return clock
	}
	return time.Now
}
