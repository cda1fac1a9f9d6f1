package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors raised by the handler itself. Handlers attach
// their own codes before returning, and those are kept.
const (
	CodeInvalidMessage = "TALORGAN_INVALID_MESSAGE"
	CodeCancelled      = "TALORGAN_CANCELLED"
	CodeTimedOut       = "TALORGAN_TIMED_OUT"
	CodeInterrupted    = "TALORGAN_INTERRUPTED"
	CodeHandlerFailed  = "TALORGAN_HANDLER_FAILED"
)

// wrapper attaches a category, message and code to an unwrapped error.
type wrapper func(err error) error

func rule(validation bool, message, code string) wrapper {
	return func(err error) error {
		if err == nil {
			return nil
		}
		if goerrors.IsWrapped(err) {
			return err
		}
		if validation {
			return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode(code)
		}
		return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
	}
}

var (
	wrapInvalidMessage = rule(true, "message rejected before compiling", CodeInvalidMessage)
	wrapCancelled      = rule(false, "compilation cancelled", CodeCancelled)
	wrapTimedOut       = rule(false, "compilation ran past its deadline", CodeTimedOut)
	wrapInterrupted    = rule(false, "compilation interrupted", CodeInterrupted)
	wrapHandlerFailed  = rule(false, "handler failed", CodeHandlerFailed)
)

func wrapValidationError(err error) error {
	return wrapInvalidMessage(err)
}

// wrapContextError matches wrapped context errors too, since the compiler
// reports cancellation as "%w" chains.
func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return wrapCancelled(err)
	case errors.Is(err, context.DeadlineExceeded):
		return wrapTimedOut(err)
	default:
		return wrapInterrupted(err)
	}
}

func wrapExecuteError(err error) error {
	return wrapHandlerFailed(err)
}
