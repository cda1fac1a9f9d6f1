package diagnostics

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReporterErrorAbortsByDefault(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(Options{Writer: &buf})

	err := r.Error("data/wiki/jane_doe", "citation 'x1' is ambiguous")
	if !errors.Is(err, ErrBuildAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
	var abort *Abort
	if !errors.As(err, &abort) || abort.Location != "data/wiki/jane_doe" {
		t.Fatalf("expected *Abort with location, got %#v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "data/wiki/jane_doe: ERROR: citation 'x1' is ambiguous" {
		t.Fatalf("unexpected output %q", got)
	}
	if r.ExitCode() != 1 {
		t.Fatalf("expected exit code 1")
	}
}

func TestReporterContinueOnError(t *testing.T) {
	failFast := false
	r := NewReporter(Options{Writer: &bytes.Buffer{}, FailFast: &failFast})

	if err := r.Error("a", "first"); err != nil {
		t.Fatalf("expected nil error when not failing fast, got %v", err)
	}
	r.Error("a", "second")
	r.Error("b", "third")

	if r.Errors() != 3 {
		t.Fatalf("expected 3 errors, got %d", r.Errors())
	}
	if files := r.ErrorFiles(); len(files) != 2 || files[0] != "a" || files[1] != "b" {
		t.Fatalf("unexpected error files %v", files)
	}
	if got := r.Summary(time.Second); got != "BUILD UNSUCCESSFUL: 3 errors across 2 files" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestReporterWarningsDoNotFail(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(Options{Writer: &buf})

	r.Warning("data/wiki/a", "cannot link to non-existing article 'ghost'")
	r.Warning("data/wiki/a", "again")

	if r.ExitCode() != 0 {
		t.Fatalf("warnings must not change the exit code")
	}
	if r.Warnings() != 2 || len(r.WarningFiles()) != 1 {
		t.Fatalf("unexpected warning accounting: %d %v", r.Warnings(), r.WarningFiles())
	}
	if got := r.Summary(1500 * time.Millisecond); got != "BUILD SUCCESSFUL: Completed in 1.5 seconds (2 warnings)" {
		t.Fatalf("unexpected summary %q", got)
	}
	if !strings.Contains(buf.String(), "data/wiki/a: WARNING: again") {
		t.Fatalf("missing warning line in %q", buf.String())
	}
}

func TestReporterRecordDoesNotHalt(t *testing.T) {
	r := NewReporter(Options{Writer: &bytes.Buffer{}})
	r.Record("x", "pages: undefined")
	r.Record("x", "source-year: true")
	if r.Errors() != 2 {
		t.Fatalf("expected 2 errors, got %d", r.Errors())
	}
	if got := r.Summary(0); got != "BUILD UNSUCCESSFUL: 2 errors" {
		t.Fatalf("unexpected summary %q", got)
	}
}
