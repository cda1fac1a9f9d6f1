package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Outcome classifies how a command ended.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeFailed      Outcome = "failed"
	OutcomeInterrupted Outcome = "interrupted"
)

// Result is handed to observers once a command returns.
type Result struct {
	Command   string
	Operation string
	Fields    map[string]any
	Started   time.Time
	Duration  time.Duration
	Outcome   Outcome
	// Err is the handler's own error, or the context error when the handler
	// returned nil after its context ended.
	Err    error
	Logger interfaces.Logger
}

// Observer receives every command result.
type Observer[T command.Message] func(ctx context.Context, msg T, result Result)

// LogObserver logs results on logger with the command fields attached.
func LogObserver[T command.Message](logger interfaces.Logger) Observer[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, result Result) {
		logResult(logging.WithFields(logger, result.Fields), result)
	}
}

func logResult(logger interfaces.Logger, result Result) {
	args := []any{"duration_ms", result.Duration.Milliseconds()}
	switch result.Outcome {
	case OutcomeCompleted:
		logger.Info("talorgan.command.completed", args...)
	case OutcomeInterrupted:
		logger.Warn("talorgan.command.interrupted", append(args, "error", result.Err)...)
	default:
		logger.Error("talorgan.command.failed", append(args, "error", result.Err)...)
	}
}
