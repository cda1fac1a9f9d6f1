package buildcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-talorgan/internal/articles"
	"github.com/goliatone/go-talorgan/internal/buildsheet"
	"github.com/goliatone/go-talorgan/internal/commands"
	"github.com/goliatone/go-talorgan/internal/compiler"
	"github.com/goliatone/go-talorgan/internal/diagnostics"
	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/internal/output"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/internal/render"
	"github.com/goliatone/go-talorgan/internal/runtimeconfig"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

const buildOperation = "articles.build"

var _ command.Commander[BuildCommand] = (*BuildHandler)(nil)

// Report summarises the last build run by a handler.
type Report struct {
	Build     string
	Documents []string
	Written   []string
	Skipped   []string
	Errors    int
	Warnings  int
	ExitCode  int
	Summary   string
	Elapsed   time.Duration
}

// Option configures a BuildHandler.
type Option func(*BuildHandler)

// WithProjectFS replaces how the project directory is opened.
func WithProjectFS(open func(dir string) fs.FS) Option {
	return func(h *BuildHandler) {
		if open != nil {
			h.openFS = open
		}
	}
}

// WithOutputWriter replaces how the output directory is opened.
func WithOutputWriter(open func(dir string) output.Writer) Option {
	return func(h *BuildHandler) {
		if open != nil {
			h.openWriter = open
		}
	}
}

// WithDiagnosticsWriter sets where ERROR, WARNING and summary lines go.
func WithDiagnosticsWriter(w io.Writer) Option {
	return func(h *BuildHandler) {
		if w != nil {
			h.diagnostics = w
		}
	}
}

// WithClock overrides the time source used for the elapsed time.
func WithClock(now func() time.Time) Option {
	return func(h *BuildHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithFeatureGates sets the runtime feature toggles.
func WithFeatureGates(gates FeatureGates) Option {
	return func(h *BuildHandler) {
		h.gates = gates
	}
}

// WithHandlerOptions forwards options to the shared command handler.
func WithHandlerOptions(opts ...commands.HandlerOption[BuildCommand]) Option {
	return func(h *BuildHandler) {
		h.handlerOpts = append(h.handlerOpts, opts...)
	}
}

// BuildHandler compiles a project and writes its artifacts.
type BuildHandler struct {
	inner *commands.Handler[BuildCommand]

	cfg            runtimeconfig.Config
	logger         interfaces.Logger
	compilerLogger interfaces.Logger
	citeLogger     interfaces.Logger
	articlesLogger interfaces.Logger
	openFS         func(dir string) fs.FS
	openWriter     func(dir string) output.Writer
	diagnostics    io.Writer
	now            func() time.Time
	gates          FeatureGates
	handlerOpts    []commands.HandlerOption[BuildCommand]

	mu   sync.Mutex
	last Report
}

// NewBuildHandler creates a handler for cfg. provider may be nil.
func NewBuildHandler(cfg runtimeconfig.Config, provider interfaces.LoggerProvider, opts ...Option) *BuildHandler {
	h := &BuildHandler{
		cfg:            cfg,
		logger:         commands.CommandLogger(provider, "build"),
		compilerLogger: logging.CompilerLogger(provider),
		citeLogger:     logging.CitationsLogger(provider),
		articlesLogger: logging.ArticlesLogger(provider),
		openFS:         os.DirFS,
		openWriter:     func(dir string) output.Writer { return output.NewDirWriter(dir) },
		diagnostics:    os.Stdout,
		now:            time.Now,
		gates: FeatureGates{
			BuildSheetEnabled: func() bool { return cfg.Features.BuildSheet },
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	handlerOpts := []commands.HandlerOption[BuildCommand]{
		commands.WithLogger[BuildCommand](h.logger),
		commands.WithOperation[BuildCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildCommand) map[string]any {
			fields := map[string]any{
				"project_dir": msg.ProjectDir,
				"build":       msg.BuildName(),
			}
			if msg.ContinueOnError {
				fields["continue_on_error"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithObserver(commands.LogObserver[BuildCommand](h.logger)),
		commands.WithClock[BuildCommand](h.now),
	}
	h.inner = commands.NewHandler(h.build, append(handlerOpts, h.handlerOpts...)...)
	return h
}

// Execute satisfies command.Commander[BuildCommand].
func (h *BuildHandler) Execute(ctx context.Context, msg BuildCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastReport returns the report of the most recent execution.
func (h *BuildHandler) LastReport() Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *BuildHandler) build(ctx context.Context, msg BuildCommand) error {
	started := h.now()
	name := msg.BuildName()
	failFast := h.cfg.Diagnostics.FailFast && !msg.ContinueOnError
	reporter := diagnostics.NewReporter(diagnostics.Options{
		Writer:   h.diagnostics,
		FailFast: &failFast,
		Color:    h.cfg.Diagnostics.Color,
		Logger:   h.logger,
	})

	report := Report{Build: name}
	defer func() {
		report.Elapsed = h.now().Sub(started)
		report.Errors = reporter.Errors()
		report.Warnings = reporter.Warnings()
		report.ExitCode = reporter.ExitCode()
		report.Summary = reporter.Summary(report.Elapsed)
		reporter.Flush(report.Elapsed)
		h.mu.Lock()
		h.last = report
		h.mu.Unlock()
	}()

	fsys := h.openFS(msg.ProjectDir)
	build, err := runtimeconfig.LoadBuild(fsys, h.cfg.DataDir, name)
	if err != nil {
		message := err.Error()
		if errors.Is(err, runtimeconfig.ErrBuildNotFound) {
			message = fmt.Sprintf("There is no build called '%s'.", name)
		}
		reporter.Record(runtimeconfig.BuildPath(h.cfg.DataDir, name), message)
		return wrapBuildError(err)
	}

	library, err := references.LoadLibrary(fsys, h.cfg.QuickReferences)
	if err != nil {
		reporter.Record(h.cfg.QuickReferences, err.Error())
		return wrapBuildError(err)
	}

	loader := articles.NewLoader(fsys, articles.LoaderConfig{
		DataDir:   h.cfg.DataDir,
		FileTypes: h.cfg.FileTypes,
		Logger:    h.articlesLogger,
	})
	sources, err := loader.Load(ctx)
	if err != nil {
		reporter.Record(h.cfg.DataDir, err.Error())
		return wrapBuildError(err)
	}

	renderer := render.New(render.Options{
		Extensions: h.cfg.Render.Extensions,
		HardWraps:  h.cfg.Render.HardWraps,
		Safe:       h.cfg.Render.Safe,
	})
	buildCtx := compiler.NewBuildContext(build, library, reporter,
		compiler.WithLogger(h.compilerLogger),
		compiler.WithCitationsLogger(h.citeLogger),
		compiler.WithRenderer(renderer),
		compiler.WithLibraryLocation(h.cfg.QuickReferences),
	)
	result, err := buildCtx.Build(ctx, sources)
	if err != nil {
		return wrapBuildError(err)
	}
	report.Skipped = result.Skipped

	writer := h.openWriter(filepath.Join(msg.ProjectDir, h.cfg.OutputDir))
	if msg.DryRun {
		writer = output.NewMemoryWriter()
	}
	for _, doc := range result.Documents {
		target := path.Join(doc.Source.FileType, doc.Source.ID+".html")
		if err := writer.WriteFile(ctx, output.Artifact{
			Path:     target,
			Content:  strings.NewReader(doc.HTML),
			Category: output.CategoryPage,
			Checksum: doc.Source.Checksum,
		}); err != nil {
			reporter.Record(doc.Source.Location, err.Error())
			return wrapBuildError(err)
		}
		report.Documents = append(report.Documents, doc.Source.Location)
		report.Written = append(report.Written, target)
	}

	if h.gates.buildSheetEnabled() && wantsBuildSheet(build) {
		data, err := result.Sheet.Marshal()
		if err != nil {
			return wrapBuildError(err)
		}
		sheetName := h.cfg.BuildSheet.FileName
		if strings.TrimSpace(sheetName) == "" {
			sheetName = buildsheet.FileName
		}
		if err := writer.WriteFile(ctx, output.Artifact{
			Path:     sheetName,
			Content:  strings.NewReader(string(data)),
			Category: output.CategorySheet,
		}); err != nil {
			reporter.Record(sheetName, err.Error())
			return wrapBuildError(err)
		}
		report.Written = append(report.Written, sheetName)
	}

	if errs := reporter.Errors(); errs > 0 {
		return wrapBuildError(fmt.Errorf("%w: %d errors", ErrBuildFailed, errs))
	}
	return nil
}
