// Package commands adapts compiler operations to go-command handlers. Errors
// leaving a Handler carry a go-errors category and text code.
package commands

import (
	"context"
	"maps"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler implements command.Commander[T] around a plain function.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	observer  Observer[T]
	clock     Clock
}

// NewHandler panics on a nil fn.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultBuildTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.clock = ensureClock(h.clock)
	if h.observer == nil {
		h.observer = func(_ context.Context, _ T, result Result) {
			logResult(result.Logger, result)
		}
	}
	return h
}

// Execute runs the wrapped function. Invalid messages and contexts that are
// already done never reach it.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	ctx, cancel := withDeadline(ensureContext(ctx), h.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	result := h.begin(msg)
	result.Logger.Debug("talorgan.command.started")

	err := h.exec(ctx, msg)
	result.Duration = h.clock().Sub(result.Started)
	err = settle(ctx, err, &result)
	h.observer(ctx, msg, result)
	return err
}

func (h *Handler[T]) begin(msg T) Result {
	messageType := command.GetMessageType(msg)
	fields := map[string]any{"command": messageType}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	return Result{
		Command:   messageType,
		Operation: h.operation,
		Fields:    fields,
		Started:   h.clock(),
		Logger:    logging.WithFields(h.logger, fields),
	}
}

// settle fills in the outcome and returns the error the caller sees. An ended
// context takes precedence over whatever the function returned.
func settle(ctx context.Context, err error, result *Result) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.Outcome = OutcomeInterrupted
		result.Err = err
		if err == nil {
			result.Err = ctxErr
		}
		return wrapContextError(ctxErr)
	}
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return wrapExecuteError(err)
	}
	result.Outcome = OutcomeCompleted
	return nil
}

// WithTimeout replaces DefaultBuildTimeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from the message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithObserver replaces the default result logging.
func WithObserver[T command.Message](observer Observer[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.observer = observer
	}
}

// WithClock sets the time source used for durations.
func WithClock[T command.Message](clock Clock) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.clock = clock
	}
}
