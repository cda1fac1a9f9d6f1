package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirWriterCreatesParents(t *testing.T) {
	root := t.TempDir()
	w := NewDirWriter(root)

	err := w.WriteFile(context.Background(), Artifact{
		Path:     "wiki/jane_doe.html",
		Content:  strings.NewReader("<p>Jane</p>"),
		Category: CategoryPage,
	})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "wiki", "jane_doe.html"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<p>Jane</p>" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestWritersRejectIncompleteArtifacts(t *testing.T) {
	ctx := context.Background()
	for _, w := range []Writer{NewDirWriter(t.TempDir()), NewMemoryWriter()} {
		if err := w.WriteFile(ctx, Artifact{Content: strings.NewReader("x")}); !errors.Is(err, ErrPathRequired) {
			t.Fatalf("%T: expected ErrPathRequired, got %v", w, err)
		}
		if err := w.WriteFile(ctx, Artifact{Path: "a.html"}); !errors.Is(err, ErrContentRequired) {
			t.Fatalf("%T: expected ErrContentRequired, got %v", w, err)
		}
	}
}

func TestMemoryWriterRecordsFiles(t *testing.T) {
	w := NewMemoryWriter()
	ctx := context.Background()
	_ = w.WriteFile(ctx, Artifact{Path: "wiki/b.html", Content: strings.NewReader("b")})
	_ = w.WriteFile(ctx, Artifact{Path: "build_sheet.json", Content: strings.NewReader("{}")})

	paths := w.Paths()
	if len(paths) != 2 || paths[0] != "build_sheet.json" || paths[1] != "wiki/b.html" {
		t.Fatalf("unexpected paths %v", paths)
	}
	if data, ok := w.File("wiki/b.html"); !ok || string(data) != "b" {
		t.Fatalf("unexpected file %q %v", data, ok)
	}
}
