package references

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/samber/lo"

	"github.com/goliatone/go-talorgan/internal/validation"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// DefaultLibraryPath is where a project keeps its quick references.
const DefaultLibraryPath = "data/quick_references.json"

var ErrLibraryInvalid = errors.New("references: quick references invalid")

// Library is the read-only set of quick references shared by every document
// of a build.
type Library struct {
	entries map[string]*interfaces.ReferenceListing
}

// NewLibrary builds a library from listings keyed by their ID.
func NewLibrary(listings ...*interfaces.ReferenceListing) *Library {
	lib := &Library{entries: make(map[string]*interfaces.ReferenceListing, len(listings))}
	for _, listing := range listings {
		if listing != nil {
			lib.entries[listing.ID] = listing
		}
	}
	return lib
}

// LoadLibrary reads the quick reference file at path. A missing file yields an
// empty library. The key of each entry is its id; an id attribute inside the
// entry is overridden.
func LoadLibrary(fsys fs.FS, path string) (*Library, error) {
	raw, err := fs.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLibrary(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("references: read %s: %w", path, err)
	}
	return ParseLibrary(raw)
}

// ParseLibrary decodes a quick reference document.
func ParseLibrary(raw []byte) (*Library, error) {
	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLibraryInvalid, err)
	}
	if err := validation.ValidateLibrary(document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLibraryInvalid, err)
	}

	fields, err := validation.ObjectFields(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLibraryInvalid, err)
	}
	lib := NewLibrary()
	for _, field := range fields {
		attributes, err := validation.Attributes(field.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLibraryInvalid, field.Name, err)
		}
		attributes = lo.Filter(attributes, func(attr interfaces.Attribute, _ int) bool {
			return attr.Name != "id"
		})
		attributes = append([]interfaces.Attribute{{Name: "id", Value: field.Name}}, attributes...)
		lib.entries[field.Name] = interfaces.NewReferenceListing(attributes)
	}
	return lib, nil
}

// Get returns the quick reference stored under key. A nil library is empty.
func (l *Library) Get(key string) (*interfaces.ReferenceListing, bool) {
	if l == nil {
		return nil, false
	}
	listing, ok := l.entries[key]
	return listing, ok
}

// Keys returns the quick reference ids in sorted order.
func (l *Library) Keys() []string {
	if l == nil {
		return nil
	}
	keys := lo.Keys(l.entries)
	slices.Sort(keys)
	return keys
}

// Len returns the number of quick references.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
