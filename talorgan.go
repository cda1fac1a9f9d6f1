package talorgan

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	buildcmd "github.com/goliatone/go-talorgan/internal/commands/build"
	"github.com/goliatone/go-talorgan/internal/compiler"
	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/internal/logging/console"
	"github.com/goliatone/go-talorgan/internal/logging/gologger"
	"github.com/goliatone/go-talorgan/internal/markup"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

var (
	ErrMalformedMarkup   = markup.ErrMalformedMarkup
	ErrSchemaViolation   = references.ErrSchemaViolation
	ErrCitationAmbiguity = references.ErrCitationAmbiguity
	ErrCitationNotFound  = references.ErrCitationNotFound
)

type (
	// BuildCommand exports the build command message.
	BuildCommand = buildcmd.BuildCommand
	// BuildReport exports the summary of a build run.
	BuildReport = buildcmd.Report
	// BuildHandler exports the go-command handler for BuildCommand.
	BuildHandler = *buildcmd.BuildHandler
	// BuildOption configures the build handler.
	BuildOption = buildcmd.Option
	// Document exports a compiled article.
	Document         = compiler.Document
	Element          = interfaces.Element
	Metadata         = interfaces.Metadata
	ReferenceListing = interfaces.ReferenceListing
)

// Option configures a Module.
type Option func(*Module)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggerProvider = provider
	}
}

// WithLogWriter sets where the console provider writes. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(m *Module) {
		if w != nil {
			m.logWriter = w
		}
	}
}

// WithBuildOptions forwards options to the build handler.
func WithBuildOptions(opts ...BuildOption) Option {
	return func(m *Module) {
		m.buildOpts = append(m.buildOpts, opts...)
	}
}

// Module is the top level runtime façade.
type Module struct {
	cfg            Config
	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	buildOpts      []BuildOption
	build          *buildcmd.BuildHandler
}

// New validates cfg and wires the build pipeline.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Module{cfg: cfg, logWriter: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.loggerProvider == nil {
		provider, err := configureLoggerProvider(cfg, m.logWriter)
		if err != nil {
			return nil, err
		}
		m.loggerProvider = provider
	}
	m.build = buildcmd.NewBuildHandler(cfg, m.loggerProvider, m.buildOpts...)
	logging.ModuleLogger(m.loggerProvider, logging.ModuleRoot).Debug("talorgan.module.ready",
		"data_dir", cfg.DataDir,
		"output_dir", cfg.OutputDir,
	)
	return m, nil
}

func configureLoggerProvider(cfg Config, w io.Writer) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("configure go-logger provider: %w", err)
		}
		return provider, nil
	default:
		level := console.ParseLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{
			Writer:   w,
			MinLevel: &level,
			Color:    cfg.Diagnostics.Color,
		}), nil
	}
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.loggerProvider
}

// BuildHandler exposes the command handler for dispatcher registration.
func (m *Module) BuildHandler() BuildHandler {
	return m.build
}

// Build runs cmd and returns its report.
func (m *Module) Build(ctx context.Context, cmd BuildCommand) (BuildReport, error) {
	err := m.build.Execute(ctx, cmd)
	return m.build.LastReport(), err
}
