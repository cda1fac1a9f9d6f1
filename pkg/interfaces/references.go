package interfaces

import "fmt"

// SourceType names the kind of source a reference listing points at.
type SourceType string

const (
	SourceBook                SourceType = "book"
	SourceCensus              SourceType = "census"
	SourceBirthCertificate    SourceType = "birth-certificate"
	SourceDeathCertificate    SourceType = "death-certificate"
	SourceLazy                SourceType = "lazy"
	SourceMarriageCertificate SourceType = "marriage-certificate"
	SourceNewspaper           SourceType = "newspaper"
	SourceTestimonial         SourceType = "testimonial"
	SourceValuationRoll       SourceType = "valuation-roll"
	SourceWebpage             SourceType = "webpage"
	SourceJournal             SourceType = "journal"
	SourceElectoralRegister   SourceType = "electoral-register"
)

// Attribute is a single raw listing attribute as decoded from JSON.
type Attribute struct {
	Name  string
	Value any
}

// ReferenceListing is a citation source record. Attributes keeps every
// decoded attribute, including id and source-type, in source order so the
// validator can check kinds against the schema table.
type ReferenceListing struct {
	ID         string
	SourceType SourceType
	Attributes []Attribute
}

// Lookup returns the raw value stored under name.
func (r *ReferenceListing) Lookup(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for _, attr := range r.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// String returns the attribute as a string, or "" when absent or not a string.
func (r *ReferenceListing) String(name string) string {
	value, ok := r.Lookup(name)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// Bool returns the attribute as a boolean, or false when absent or not a boolean.
func (r *ReferenceListing) Bool(name string) bool {
	value, ok := r.Lookup(name)
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// ErrorNotice describes one schema violation on a listing attribute. Missing
// is set when the attribute was absent, in which case Value is nil.
type ErrorNotice struct {
	Attribute string
	Value     any
	Missing   bool
}

// DisplayValue renders the offending value the way diagnostics print it.
func (n ErrorNotice) DisplayValue() string {
	if n.Missing {
		return "undefined"
	}
	if n.Value == nil {
		return "null"
	}
	return fmt.Sprint(n.Value)
}

// NewReferenceListing builds a listing from decoded attributes, lifting id and
// source-type when they are strings. The object discriminant `type` is not an
// attribute of the listing and is dropped.
func NewReferenceListing(attributes []Attribute) *ReferenceListing {
	listing := &ReferenceListing{Attributes: make([]Attribute, 0, len(attributes))}
	for _, attr := range attributes {
		switch attr.Name {
		case "type":
			continue
		case "id":
			listing.ID, _ = attr.Value.(string)
		case "source-type":
			if value, ok := attr.Value.(string); ok {
				listing.SourceType = SourceType(value)
			}
		}
		listing.Attributes = append(listing.Attributes, attr)
	}
	return listing
}
