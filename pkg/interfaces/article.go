package interfaces

import "github.com/google/uuid"

// ElementKind discriminates the variants of Element.
type ElementKind string

const (
	ElementParagraph ElementKind = "paragraph"
	ElementHeading   ElementKind = "heading"
	ElementObject    ElementKind = "object"
)

// Element is one entry of a parsed article. The set of implementations is
// closed: Paragraph, Heading and EmbeddedObject.
type Element interface {
	Kind() ElementKind
	sealed()
}

// Paragraph holds a run of plain text terminated by a blank line.
type Paragraph struct {
	Text string
}

// Heading holds a `#`-prefixed line; Level is the number of leading hashes.
type Heading struct {
	Level int
	Text  string
}

// EmbeddedObject is a brace-delimited JSON object found inline in the markup.
// Raw keeps the verbatim source, Fields the decoded attributes and Payload the
// typed view selected by Type.
type EmbeddedObject struct {
	Type    string
	Raw     string
	Line    int
	Fields  map[string]any
	Payload Payload
}

func (Paragraph) Kind() ElementKind      { return ElementParagraph }
func (Heading) Kind() ElementKind        { return ElementHeading }
func (EmbeddedObject) Kind() ElementKind { return ElementObject }

func (Paragraph) sealed()      {}
func (Heading) sealed()        {}
func (EmbeddedObject) sealed() {}

// Embedded object type discriminants.
const (
	ObjectInfo       = "info"
	ObjectInfoBox    = "infobox"
	ObjectImage      = "img"
	ObjectGallery    = "gallery"
	ObjectRefListing = "ref-listing"
)

// Payload is the typed content of an EmbeddedObject.
type Payload interface {
	PayloadType() string
}

// InfoTag carries the document level metadata of an article. Only one is kept
// per document; a later info object replaces an earlier one.
type InfoTag struct {
	Name        string
	Born        string
	Died        string
	Subtitle    string
	ArticleType string
	Images      []Image
}

// InfoBox is the side panel summary table.
type InfoBox struct {
	Image        string
	ImageCaption string
	Entries      []InfoBoxEntry
}

// InfoBoxEntry is one labelled row of an InfoBox, in source order.
type InfoBoxEntry struct {
	Label  string
	Values []string
}

// Image is a single picture with an optional caption and float side.
type Image struct {
	Src     string
	Caption string
	Float   string
}

// Gallery is a horizontally scrolling set of images.
type Gallery struct {
	Images []Image
}

// RawObject keeps objects whose type is not known to the compiler.
type RawObject struct {
	Type string
}

func (*InfoTag) PayloadType() string          { return ObjectInfo }
func (*InfoBox) PayloadType() string          { return ObjectInfoBox }
func (*Image) PayloadType() string            { return ObjectImage }
func (*Gallery) PayloadType() string          { return ObjectGallery }
func (*ReferenceListing) PayloadType() string { return ObjectRefListing }
func (r *RawObject) PayloadType() string      { return r.Type }

// Metadata is the per-document record filled while an article compiles.
// Headings is append-only and follows document order.
type Metadata struct {
	ID          uuid.UUID
	FileType    string
	Name        string
	ArticleType string
	Subtitle    string
	Born        string
	Died        string
	Headings    []string
	Images      []Image
	Info        *InfoTag
	InfoBox     *InfoBox
}

// IsSplitFormat reports whether the article renders with an images column.
func (m Metadata) IsSplitFormat() bool {
	switch m.ArticleType {
	case "person", "place", "lineage":
		return true
	default:
		return false
	}
}
