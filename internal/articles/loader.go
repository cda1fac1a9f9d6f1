// Package articles discovers article source files inside a project.
package articles

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/zeebo/blake3"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// FullBuild is the build name that includes every article.
const FullBuild = "full"

// DefaultFileTypes are compiled in this order.
var DefaultFileTypes = []string{"wiki", "sheet"}

// Source is one article file.
type Source struct {
	FileType string
	// Name is the file name including its extension.
	Name string
	// ID is the file name without extension; links and members use it.
	ID string
	// Location identifies the article in diagnostics, e.g. data/wiki/jane_doe.
	Location string
	Path     string
	Raw      []byte
	Checksum string
}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// DataDir holds the <filetype>_source directories. Defaults to data.
	DataDir   string
	FileTypes []string
	// Pattern filters file names. Defaults to every file.
	Pattern string
	Logger  interfaces.Logger
}

// Loader reads article sources from a project filesystem.
type Loader struct {
	fs        fs.FS
	dataDir   string
	fileTypes []string
	pattern   string
	logger    interfaces.Logger
}

// NewLoader returns a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	dataDir := path.Clean(strings.TrimSpace(cfg.DataDir))
	if dataDir == "." || dataDir == "" {
		dataDir = "data"
	}
	fileTypes := lo.Uniq(lo.Compact(cfg.FileTypes))
	if len(fileTypes) == 0 {
		fileTypes = append([]string(nil), DefaultFileTypes...)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Loader{
		fs:        filesystem,
		dataDir:   dataDir,
		fileTypes: fileTypes,
		pattern:   cfg.Pattern,
		logger:    logger,
	}
}

// FileTypes returns the file types in compile order.
func (l *Loader) FileTypes() []string {
	return append([]string(nil), l.fileTypes...)
}

// Load reads every source, grouped by file type in configured order and
// sorted by name within a type. Missing source directories are skipped.
func (l *Loader) Load(ctx context.Context) ([]Source, error) {
	var sources []Source
	for _, fileType := range l.fileTypes {
		batch, err := l.loadType(ctx, fileType)
		if err != nil {
			return nil, err
		}
		sources = append(sources, batch...)
	}
	return sources, nil
}

func (l *Loader) loadType(ctx context.Context, fileType string) ([]Source, error) {
	root := path.Join(l.dataDir, fileType+"_source")
	if _, err := fs.Stat(l.fs, root); errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("articles.source_dir.missing", "path", root)
		return nil, nil
	}

	var sources []Source
	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != root {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") || !l.matches(d.Name()) {
			return nil
		}

		raw, err := fs.ReadFile(l.fs, p)
		if err != nil {
			return fmt.Errorf("articles: read %s: %w", p, err)
		}
		id := strings.TrimSuffix(d.Name(), path.Ext(d.Name()))
		sources = append(sources, Source{
			FileType: fileType,
			Name:     d.Name(),
			ID:       id,
			Location: path.Join(l.dataDir, fileType, id),
			Path:     p,
			Raw:      raw,
			Checksum: Checksum(raw),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Location < sources[j].Location
	})
	l.logger.Debug("articles.loaded", "file_type", fileType, "count", len(sources))
	return sources, nil
}

func (l *Loader) matches(name string) bool {
	if strings.TrimSpace(l.pattern) == "" {
		return true
	}
	ok, err := path.Match(l.pattern, name)
	return err == nil && ok
}

// IDs returns the distinct article ids of sources in order.
func IDs(sources []Source) []string {
	return lo.Uniq(lo.Map(sources, func(s Source, _ int) string { return s.ID }))
}

// ShouldBuild reports whether id belongs to the named build.
func ShouldBuild(buildName string, members []string, id string) bool {
	return buildName == FullBuild || lo.Contains(members, id)
}

// Checksum is the hex BLAKE3 digest of raw.
func Checksum(raw []byte) string {
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
