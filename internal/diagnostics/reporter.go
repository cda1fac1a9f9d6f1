// Package diagnostics accumulates the errors and warnings produced while a
// build runs, together with the files that produced them.
package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// ErrBuildAborted is the cause of every Abort returned by Reporter.Error.
var ErrBuildAborted = errors.New("diagnostics: build aborted")

// Abort is returned by Error when the reporter halts on the first error.
type Abort struct {
	Location string
	Message  string
}

func (a *Abort) Error() string {
	return fmt.Sprintf("%s: %s", a.Location, a.Message)
}

func (a *Abort) Unwrap() error {
	return ErrBuildAborted
}

// Options configures a Reporter.
type Options struct {
	// Writer receives the human readable lines; defaults to stdout.
	Writer io.Writer
	// FailFast makes Error return an *Abort. Defaults to true.
	FailFast *bool
	// Color enables ANSI colouring of labels.
	Color  bool
	Logger interfaces.Logger
}

// Reporter counts errors and warnings and remembers which files produced them.
type Reporter struct {
	mu           sync.Mutex
	writer       io.Writer
	failFast     bool
	logger       interfaces.Logger
	errorLabel   *color.Color
	warningLabel *color.Color
	successLabel *color.Color

	errors       int
	warnings     int
	errorFiles   []string
	warningFiles []string
}

// NewReporter returns a Reporter configured by opts.
func NewReporter(opts Options) *Reporter {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	failFast := true
	if opts.FailFast != nil {
		failFast = *opts.FailFast
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Reporter{
		writer:       writer,
		failFast:     failFast,
		logger:       logger,
		errorLabel:   label(opts.Color, color.FgRed),
		warningLabel: label(opts.Color, color.FgYellow),
		successLabel: label(opts.Color, color.FgGreen),
	}
}

func label(enabled bool, attr color.Attribute) *color.Color {
	c := color.New(attr, color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// FailFast reports whether Error halts the build.
func (r *Reporter) FailFast() bool {
	return r.failFast
}

// Error records an error at location. When the reporter fails fast the
// returned *Abort must be propagated so the build stops.
func (r *Reporter) Error(location, message string) error {
	r.Record(location, message)
	if !r.failFast {
		return nil
	}
	return &Abort{Location: location, Message: message}
}

// Record counts and prints an error without halting. Validators use it to
// report every problem of one record before failing.
func (r *Reporter) Record(location, message string) {
	r.mu.Lock()
	r.errors++
	if !lo.Contains(r.errorFiles, location) {
		r.errorFiles = append(r.errorFiles, location)
	}
	r.mu.Unlock()

	r.print(location, r.errorLabel.Sprint("ERROR:"), message)
	r.logger.Error("diagnostics.error", "location", location, "message", message)
}

// Warning counts and prints a warning. Warnings never halt the build.
func (r *Reporter) Warning(location, message string) {
	r.mu.Lock()
	r.warnings++
	if !lo.Contains(r.warningFiles, location) {
		r.warningFiles = append(r.warningFiles, location)
	}
	r.mu.Unlock()

	r.print(location, r.warningLabel.Sprint("WARNING:"), message)
	r.logger.Warn("diagnostics.warning", "location", location, "message", message)
}

func (r *Reporter) print(location, tag, message string) {
	if location == "" {
		fmt.Fprintf(r.writer, "%s %s\n", tag, message)
		return
	}
	fmt.Fprintf(r.writer, "%s: %s %s\n", location, tag, message)
}

// Errors returns the number of errors recorded so far.
func (r *Reporter) Errors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// Warnings returns the number of warnings recorded so far.
func (r *Reporter) Warnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

// ErrorFiles returns the distinct locations that produced errors, in first
// seen order.
func (r *Reporter) ErrorFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errorFiles...)
}

// WarningFiles returns the distinct locations that produced warnings.
func (r *Reporter) WarningFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warningFiles...)
}

// ExitCode is 1 when any error was recorded. Warnings do not count.
func (r *Reporter) ExitCode() int {
	if r.Errors() > 0 {
		return 1
	}
	return 0
}

// Summary renders the closing line of a build.
func (r *Reporter) Summary(elapsed time.Duration) string {
	errs := r.Errors()
	warnings := r.Warnings()
	files := len(r.ErrorFiles())

	if errs == 0 {
		line := fmt.Sprintf("%s Completed in %s seconds",
			r.successLabel.Sprint("BUILD SUCCESSFUL:"),
			strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
		if warnings > 0 {
			line += fmt.Sprintf(" (%d warnings)", warnings)
		}
		return line
	}

	line := fmt.Sprintf("%s %d errors", r.errorLabel.Sprint("BUILD UNSUCCESSFUL:"), errs)
	if files > 1 {
		line += fmt.Sprintf(" across %d files", files)
	}
	return line
}

// Flush writes the summary line to the reporter's writer.
func (r *Reporter) Flush(elapsed time.Duration) {
	fmt.Fprintln(r.writer, r.Summary(elapsed))
	r.logger.Info("diagnostics.summary",
		"errors", r.Errors(),
		"warnings", r.Warnings(),
		"elapsed", elapsed.String(),
	)
}
