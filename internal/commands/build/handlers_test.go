package buildcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-talorgan/internal/buildsheet"
	"github.com/goliatone/go-talorgan/internal/compiler"
	"github.com/goliatone/go-talorgan/internal/markup"
	"github.com/goliatone/go-talorgan/internal/output"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/internal/runtimeconfig"
)

func project() fstest.MapFS {
	return fstest.MapFS{
		"data/quick_references.json": {Data: []byte(`{
  "bible": {"source-type": "lazy", "source-value": "Family bible", "source-link": ""}
}`)},
		"data/builds/jane.json":         {Data: []byte(`{"members": ["jane_doe"]}`)},
		"data/builds/tree.json":         {Data: []byte(`{"members": ["jane_doe"], "features": ["tree"]}`)},
		"data/wiki_source/jane_doe.txt": {Data: []byte("{\"type\": \"info\", \"name\": \"Jane Doe\", \"born\": \"3 March 1920\", \"article-type\": \"person\"}\n\n# Early life\n\nBorn in Glasgow [bible].\n")},
		"data/wiki_source/john_doe.txt": {Data: []byte("Married [[Jane|jane_doe]].\n")},
	}
}

type fixture struct {
	handler *BuildHandler
	writer  *output.MemoryWriter
	out     *bytes.Buffer
	opened  []string
}

func newFixture(t *testing.T, fsys fs.FS, mutate func(*runtimeconfig.Config)) *fixture {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	f := &fixture{writer: output.NewMemoryWriter(), out: &bytes.Buffer{}}
	fixed := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	f.handler = NewBuildHandler(cfg, nil,
		WithProjectFS(func(string) fs.FS { return fsys }),
		WithOutputWriter(func(dir string) output.Writer {
			f.opened = append(f.opened, dir)
			return f.writer
		}),
		WithDiagnosticsWriter(f.out),
		WithClock(func() time.Time { return fixed }),
	)
	return f
}

func TestBuildHandlerWritesPagesAndBuildSheet(t *testing.T) {
	f := newFixture(t, project(), nil)

	if err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family"}); err != nil {
		t.Fatalf("Execute: %v\n%s", err, f.out.String())
	}

	want := []string{"build_sheet.json", "wiki/jane_doe.html", "wiki/john_doe.html"}
	if got := f.writer.Paths(); !slices.Equal(got, want) {
		t.Fatalf("unexpected artifacts %v", got)
	}
	if len(f.opened) != 1 || !strings.HasSuffix(f.opened[0], "build") {
		t.Fatalf("expected output under the build directory, got %v", f.opened)
	}

	page, _ := f.writer.File("wiki/jane_doe.html")
	if !strings.Contains(string(page), `<div class="reference" id="ref-1">1. Family bible</div>`) {
		t.Fatalf("page missing bibliography:\n%s", page)
	}

	raw, _ := f.writer.File("build_sheet.json")
	var sheet buildsheet.Sheet
	if err := json.Unmarshal(raw, &sheet); err != nil {
		t.Fatalf("decode sheet: %v", err)
	}
	if sheet.Build != "full" || sheet.PageData["wiki/jane_doe"].Name != "Jane Doe" {
		t.Fatalf("unexpected sheet %#v", sheet)
	}

	report := f.handler.LastReport()
	if report.ExitCode != 0 || len(report.Documents) != 2 {
		t.Fatalf("unexpected report %#v", report)
	}
	if !strings.Contains(f.out.String(), "BUILD SUCCESSFUL: Completed in 0 seconds") {
		t.Fatalf("missing summary:\n%s", f.out.String())
	}
}

func TestBuildHandlerNamedBuild(t *testing.T) {
	f := newFixture(t, project(), nil)

	if err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family", Name: "jane"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := f.writer.Paths(); !slices.Equal(got, []string{"build_sheet.json", "wiki/jane_doe.html"}) {
		t.Fatalf("unexpected artifacts %v", got)
	}
}

func TestBuildHandlerBuildFeaturesLeaveOutSheet(t *testing.T) {
	f := newFixture(t, project(), nil)

	if err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family", Name: "tree"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := f.writer.Paths(); !slices.Equal(got, []string{"wiki/jane_doe.html"}) {
		t.Fatalf("unexpected artifacts %v", got)
	}
}

func TestBuildHandlerFeatureGates(t *testing.T) {
	enabled := false
	writer := output.NewMemoryWriter()
	handler := NewBuildHandler(runtimeconfig.DefaultConfig(), nil,
		WithProjectFS(func(string) fs.FS { return project() }),
		WithOutputWriter(func(string) output.Writer { return writer }),
		WithDiagnosticsWriter(&bytes.Buffer{}),
		WithFeatureGates(FeatureGates{BuildSheetEnabled: func() bool { return enabled }}),
	)

	if err := handler.Execute(context.Background(), BuildCommand{ProjectDir: "family"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := writer.File("build_sheet.json"); ok {
		t.Fatalf("gate was off but the build sheet was written")
	}

	enabled = true
	if err := handler.Execute(context.Background(), BuildCommand{ProjectDir: "family"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := writer.File("build_sheet.json"); !ok {
		t.Fatalf("gate is read on every run")
	}
}

func TestBuildHandlerUnknownBuild(t *testing.T) {
	f := newFixture(t, project(), nil)

	err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family", Name: "nope"})
	if err == nil {
		t.Fatal("expected error for unknown build")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !strings.Contains(f.out.String(), "data/builds/nope.json: ERROR: There is no build called 'nope'.") {
		t.Fatalf("unexpected diagnostics:\n%s", f.out.String())
	}
	if f.handler.LastReport().ExitCode != 1 {
		t.Fatalf("expected exit code 1")
	}
}

func TestBuildHandlerContinueOnError(t *testing.T) {
	fsys := project()
	fsys["data/wiki_source/broken.txt"] = &fstest.MapFile{Data: []byte("Cited [nowhere]\n")}
	f := newFixture(t, fsys, nil)

	err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family", ContinueOnError: true})
	if err == nil {
		t.Fatal("expected build failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	report := f.handler.LastReport()
	if !slices.Equal(report.Skipped, []string{"data/wiki/broken"}) || len(report.Documents) != 2 {
		t.Fatalf("unexpected report %#v", report)
	}
	if !strings.Contains(f.out.String(), "BUILD UNSUCCESSFUL: 1 errors") {
		t.Fatalf("missing summary:\n%s", f.out.String())
	}
}

func TestBuildHandlerFailFastWritesNothing(t *testing.T) {
	fsys := project()
	fsys["data/wiki_source/broken.txt"] = &fstest.MapFile{Data: []byte("Cited [nowhere]\n")}
	f := newFixture(t, fsys, nil)

	err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(f.writer.Paths()) != 0 {
		t.Fatalf("expected no artifacts, got %v", f.writer.Paths())
	}
}

func TestBuildHandlerDryRunAndDisabledSheet(t *testing.T) {
	f := newFixture(t, project(), func(cfg *runtimeconfig.Config) {
		cfg.Features.BuildSheet = false
	})

	if err := f.handler.Execute(context.Background(), BuildCommand{ProjectDir: "family", DryRun: true}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(f.writer.Paths()) != 0 {
		t.Fatalf("dry run wrote artifacts %v", f.writer.Paths())
	}
	if written := f.handler.LastReport().Written; slices.Contains(written, "build_sheet.json") {
		t.Fatalf("build sheet written while disabled: %v", written)
	}
}

func TestBuildHandlerValidation(t *testing.T) {
	f := newFixture(t, project(), nil)
	err := f.handler.Execute(context.Background(), BuildCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&markup.SyntaxError{Line: 3, Message: "x"}, CodeMalformedMarkup},
		{&compiler.Failure{Err: references.ErrSchemaViolation, Aborted: true}, CodeSchemaViolation},
		{references.ErrCitationAmbiguity, CodeCitationAmbiguity},
		{&compiler.Failure{Err: references.ErrCitationNotFound}, CodeCitationNotFound},
		{runtimeconfig.ErrBuildNotFound, CodeBuildNotFound},
		{ErrBuildFailed, CodeBuildFailed},
		{errors.New("disk full"), CodeBuildFailed},
	}
	for _, tc := range cases {
		if got := ErrorCode(tc.err); got != tc.want {
			t.Fatalf("ErrorCode(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
