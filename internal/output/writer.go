// Package output writes build artifacts: article fragments and the build
// sheet.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

var (
	ErrPathRequired    = errors.New("output: write requires path")
	ErrContentRequired = errors.New("output: write requires content")
)

// Category groups artifacts for logging.
type Category string

const (
	CategoryPage  Category = "page"
	CategorySheet Category = "sheet"
)

// Artifact describes one file routed through a Writer. Path is slash
// separated and relative to the writer root.
type Artifact struct {
	Path     string
	Content  io.Reader
	Category Category
	Checksum string
}

// Writer abstracts where artifacts land.
type Writer interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, artifact Artifact) error
}

func validate(artifact Artifact) error {
	if strings.TrimSpace(artifact.Path) == "" {
		return ErrPathRequired
	}
	if artifact.Content == nil {
		return ErrContentRequired
	}
	return nil
}

// DirWriter writes below a directory on the local filesystem.
type DirWriter struct {
	root string
}

// NewDirWriter returns a writer rooted at root.
func NewDirWriter(root string) *DirWriter {
	return &DirWriter{root: root}
}

func (w *DirWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(filepath.Join(w.root, filepath.FromSlash(path)), 0o755)
}

func (w *DirWriter) WriteFile(ctx context.Context, artifact Artifact) error {
	if err := validate(artifact); err != nil {
		return err
	}
	if err := w.EnsureDir(ctx, filepathDir(artifact.Path)); err != nil {
		return fmt.Errorf("output: ensure dir for %s: %w", artifact.Path, err)
	}
	data, err := io.ReadAll(artifact.Content)
	if err != nil {
		return fmt.Errorf("output: read %s: %w", artifact.Path, err)
	}
	target := filepath.Join(w.root, filepath.FromSlash(artifact.Path))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", artifact.Path, err)
	}
	return nil
}

func filepathDir(path string) string {
	index := strings.LastIndex(path, "/")
	if index < 0 {
		return ""
	}
	return path[:index]
}

// MemoryWriter keeps artifacts in memory. Dry runs and tests use it.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  []string
}

// NewMemoryWriter returns an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

func (w *MemoryWriter) EnsureDir(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path != "" && !lo.Contains(w.dirs, path) {
		w.dirs = append(w.dirs, path)
	}
	return nil
}

func (w *MemoryWriter) WriteFile(ctx context.Context, artifact Artifact) error {
	if err := validate(artifact); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, artifact.Content); err != nil {
		return err
	}
	if err := w.EnsureDir(ctx, filepathDir(artifact.Path)); err != nil {
		return err
	}
	w.mu.Lock()
	w.files[artifact.Path] = buf.Bytes()
	w.mu.Unlock()
	return nil
}

// File returns the content written to path.
func (w *MemoryWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	return data, ok
}

// Paths returns the written paths in sorted order.
func (w *MemoryWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := lo.Keys(w.files)
	slices.Sort(paths)
	return paths
}
