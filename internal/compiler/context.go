// Package compiler runs the article pipeline: parse, info validation, the
// element walk over listings, body render, citation resolution and the
// bibliography.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-talorgan/internal/citations"
	"github.com/goliatone/go-talorgan/internal/diagnostics"
	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/internal/render"
	"github.com/goliatone/go-talorgan/internal/runtimeconfig"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// BuildContext is the state shared by every document of one build. Documents
// compile one at a time; Location always names the document in progress.
type BuildContext struct {
	Config      runtimeconfig.BuildConfiguration
	AllArticles []string
	Library     *references.Library
	Diagnostics *diagnostics.Reporter
	Location    string

	libraryLocation string
	renderer        *render.HTML
	resolver        *citations.Resolver
	logger          interfaces.Logger
	citationsLogger interfaces.Logger
}

// DocumentState is created for each document and never reused.
type DocumentState struct {
	Location string
	// Citations holds the distinct cited keys in footnote order.
	Citations []string
	Listings  *references.Registry
}

// Option configures a BuildContext.
type Option func(*BuildContext)

// WithLogger sets the compiler logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(b *BuildContext) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithRenderer replaces the default HTML renderer.
func WithRenderer(renderer *render.HTML) Option {
	return func(b *BuildContext) {
		if renderer != nil {
			b.renderer = renderer
		}
	}
}

// WithCitationsLogger sets the resolver's logger. Defaults to the build logger.
func WithCitationsLogger(logger interfaces.Logger) Option {
	return func(b *BuildContext) {
		b.citationsLogger = logger
	}
}

// WithLibraryLocation names the quick reference file in diagnostics.
func WithLibraryLocation(location string) Option {
	return func(b *BuildContext) {
		if strings.TrimSpace(location) != "" {
			b.libraryLocation = location
		}
	}
}

// NewBuildContext prepares a build. library and reporter may be nil.
func NewBuildContext(build runtimeconfig.BuildConfiguration, library *references.Library, reporter *diagnostics.Reporter, opts ...Option) *BuildContext {
	if build.Name == "" {
		build.Name = runtimeconfig.FullBuild
	}
	if library == nil {
		library = references.NewLibrary()
	}
	if reporter == nil {
		reporter = diagnostics.NewReporter(diagnostics.Options{})
	}
	b := &BuildContext{
		Config:          build,
		AllArticles:     append([]string(nil), build.AllArticles...),
		Library:         library,
		Diagnostics:     reporter,
		libraryLocation: references.DefaultLibraryPath,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.renderer == nil {
		b.renderer = render.New(render.Options{})
	}
	resolverLogger := b.citationsLogger
	if resolverLogger == nil {
		resolverLogger = b.logger
	}
	b.resolver = citations.NewResolver(b.renderer, citations.WithLogger(resolverLogger))
	return b
}

// Begin moves the build to location and returns a fresh document state.
func (b *BuildContext) Begin(location string) *DocumentState {
	b.Location = location
	return &DocumentState{
		Location: location,
		Listings: references.NewRegistry(b.Library),
	}
}

// Scope returns the link targets of the build. The full build includes every
// known article.
func (b *BuildContext) Scope() citations.Scope {
	members := b.Config.Members
	if b.Config.IsFull() {
		members = b.AllArticles
	}
	return citations.Scope{Members: members, AllArticles: b.AllArticles}
}

// Failure is a fatal document error. It unwraps to the cause and, when the
// reporter halted the build, to diagnostics.ErrBuildAborted.
type Failure struct {
	Location string
	Err      error
	Aborted  bool
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Location, f.Err)
}

func (f *Failure) Unwrap() []error {
	if f.Aborted {
		return []error{f.Err, diagnostics.ErrBuildAborted}
	}
	return []error{f.Err}
}

// fail reports err at the current location. recorded is set when the error
// was already counted, as schema notices are.
func (b *BuildContext) fail(err error, recorded bool) error {
	failure := &Failure{Location: b.Location, Err: err}
	if recorded {
		failure.Aborted = b.Diagnostics.FailFast()
	} else {
		failure.Aborted = b.Diagnostics.Error(b.Location, err.Error()) != nil
	}
	return failure
}

// ValidateLibrary checks every quick reference against the listing schema.
// All notices are reported before the first failure is returned.
func (b *BuildContext) ValidateLibrary() error {
	b.Location = b.libraryLocation
	var failed error
	for _, key := range b.Library.Keys() {
		listing, _ := b.Library.Get(key)
		if err := references.Check(listing, b.Diagnostics, b.libraryLocation); err != nil && failed == nil {
			failed = err
		}
	}
	if failed != nil {
		return b.fail(failed, true)
	}
	return nil
}

// IsAborted reports whether err stopped the build.
func IsAborted(err error) bool {
	return errors.Is(err, diagnostics.ErrBuildAborted)
}
