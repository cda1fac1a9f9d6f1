package references

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

var (
	ErrCitationAmbiguity = errors.New("references: citation is ambiguous")
	ErrCitationNotFound  = errors.New("references: citation not found")
)

// Source tells which store a resolved listing came from.
type Source uint8

const (
	SourceNone Source = iota
	SourceDocument
	SourceLibrary
)

func (s Source) String() string {
	switch s {
	case SourceDocument:
		return "document"
	case SourceLibrary:
		return "quick-reference"
	default:
		return "none"
	}
}

// Registry holds the listings recorded in one document and resolves keys
// against them and the shared quick reference library.
type Registry struct {
	listings map[string]*interfaces.ReferenceListing
	order    []string
	library  *Library
}

// NewRegistry returns an empty per-document registry. library may be nil.
func NewRegistry(library *Library) *Registry {
	return &Registry{
		listings: map[string]*interfaces.ReferenceListing{},
		library:  library,
	}
}

// Record stores listing under its id. It returns true when an earlier listing
// with the same id was replaced.
func (r *Registry) Record(listing *interfaces.ReferenceListing) bool {
	if listing == nil {
		return false
	}
	_, replaced := r.listings[listing.ID]
	if !replaced {
		r.order = append(r.order, listing.ID)
	}
	r.listings[listing.ID] = listing
	return replaced
}

// Len returns the number of in-document listings.
func (r *Registry) Len() int {
	return len(r.listings)
}

// IDs returns the in-document listing ids in first-recorded order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Lookup resolves key to exactly one listing.
func (r *Registry) Lookup(key string) (*interfaces.ReferenceListing, Source, error) {
	local, inDocument := r.listings[key]
	shared, inLibrary := r.library.Get(key)

	switch {
	case inDocument && inLibrary:
		return nil, SourceNone, fmt.Errorf("%w: '%s' is both an in-document listing and a quick reference", ErrCitationAmbiguity, key)
	case inDocument:
		return local, SourceDocument, nil
	case inLibrary:
		return shared, SourceLibrary, nil
	default:
		return nil, SourceNone, fmt.Errorf("%w: no listing or quick reference with id '%s'", ErrCitationNotFound, key)
	}
}
