package references

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestRegistryLookupResolvesExactlyOneStore(t *testing.T) {
	library := NewLibrary(listing("id", "q1", "source-type", "lazy", "source-value", "Bible", "source-link", ""))
	registry := NewRegistry(library)
	registry.Record(listing("id", "d1", "source-type", "lazy", "source-value", "Letter", "source-link", ""))

	got, source, err := registry.Lookup("d1")
	if err != nil || source != SourceDocument || got.ID != "d1" {
		t.Fatalf("expected in-document listing, got %v %v %v", got, source, err)
	}
	got, source, err = registry.Lookup("q1")
	if err != nil || source != SourceLibrary || got.ID != "q1" {
		t.Fatalf("expected quick reference, got %v %v %v", got, source, err)
	}
	if _, _, err := registry.Lookup("nope"); !errors.Is(err, ErrCitationNotFound) {
		t.Fatalf("expected ErrCitationNotFound, got %v", err)
	}
}

func TestRegistryAmbiguousKey(t *testing.T) {
	library := NewLibrary(listing("id", "x1", "source-type", "lazy"))
	registry := NewRegistry(library)
	registry.Record(listing("id", "x1", "source-type", "lazy"))

	if _, _, err := registry.Lookup("x1"); !errors.Is(err, ErrCitationAmbiguity) {
		t.Fatalf("expected ErrCitationAmbiguity, got %v", err)
	}
}

func TestRegistryRecordLastWins(t *testing.T) {
	registry := NewRegistry(nil)
	if registry.Record(listing("id", "a", "source-type", "lazy", "source-value", "first")) {
		t.Fatalf("first record must not report a replacement")
	}
	if !registry.Record(listing("id", "a", "source-type", "lazy", "source-value", "second")) {
		t.Fatalf("duplicate id must report a replacement")
	}
	got, _, _ := registry.Lookup("a")
	if got.String("source-value") != "second" {
		t.Fatalf("expected last listing to win, got %q", got.String("source-value"))
	}
	if registry.Len() != 1 || len(registry.IDs()) != 1 {
		t.Fatalf("expected a single id, got %v", registry.IDs())
	}
}

func TestLoadLibrary(t *testing.T) {
	fsys := fstest.MapFS{
		DefaultLibraryPath: {Data: []byte(`{
			"bible": {"source-type": "lazy", "source-value": "Family bible", "source-link": ""},
			"census1901": {"id": "ignored", "source-type": "census", "year": "1901"}
		}`)},
	}
	lib, err := LoadLibrary(fsys, DefaultLibraryPath)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if keys := lib.Keys(); len(keys) != 2 || keys[0] != "bible" || keys[1] != "census1901" {
		t.Fatalf("unexpected keys %v", keys)
	}
	census, ok := lib.Get("census1901")
	if !ok || census.ID != "census1901" || census.SourceType != "census" {
		t.Fatalf("unexpected census listing %#v", census)
	}
	if notices := Validate(census); len(notices) != 0 {
		t.Fatalf("loaded listing should validate, got %#v", notices)
	}
}

func TestLoadLibraryMissingFileIsEmpty(t *testing.T) {
	lib, err := LoadLibrary(fstest.MapFS{}, DefaultLibraryPath)
	if err != nil || lib.Len() != 0 {
		t.Fatalf("expected empty library, got %v %v", lib, err)
	}
}

func TestLoadLibraryRejectsBadShape(t *testing.T) {
	fsys := fstest.MapFS{"q.json": {Data: []byte(`{"bible": {"source-value": "x"}}`)}}
	if _, err := LoadLibrary(fsys, "q.json"); !errors.Is(err, ErrLibraryInvalid) {
		t.Fatalf("expected ErrLibraryInvalid, got %v", err)
	}
}
