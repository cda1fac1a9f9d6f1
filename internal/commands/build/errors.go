package buildcmd

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-talorgan/internal/markup"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/internal/runtimeconfig"
	"github.com/goliatone/go-talorgan/internal/validation"
)

// Text codes attached to build errors.
const (
	CodeMalformedMarkup   = "MALFORMED_MARKUP"
	CodeSchemaViolation   = "SCHEMA_VIOLATION"
	CodeCitationAmbiguity = "CITATION_AMBIGUITY"
	CodeCitationNotFound  = "CITATION_NOT_FOUND"
	CodeBuildNotFound     = "BUILD_NOT_FOUND"
	CodeBuildFailed       = "BUILD_FAILED"
)

// ErrBuildFailed reports a build that finished with errors.
var ErrBuildFailed = errors.New("build command: build finished with errors")

// ErrorCode classifies err by the pipeline failure that caused it.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, markup.ErrMalformedMarkup):
		return CodeMalformedMarkup
	case errors.Is(err, references.ErrSchemaViolation),
		errors.Is(err, references.ErrLibraryInvalid),
		errors.Is(err, validation.ErrSchemaValidation),
		errors.Is(err, runtimeconfig.ErrBuildInvalid):
		return CodeSchemaViolation
	case errors.Is(err, references.ErrCitationAmbiguity):
		return CodeCitationAmbiguity
	case errors.Is(err, references.ErrCitationNotFound):
		return CodeCitationNotFound
	case errors.Is(err, runtimeconfig.ErrBuildNotFound):
		return CodeBuildNotFound
	default:
		return CodeBuildFailed
	}
}

func wrapBuildError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	code := ErrorCode(err)
	if code == CodeBuildFailed {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "build failed").
			WithTextCode(code)
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "build input is invalid").
		WithTextCode(code)
}
