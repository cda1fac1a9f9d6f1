// Package references validates reference listings and resolves citation keys
// against the listings of one document and the build-wide quick references.
package references

import (
	"slices"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Kind is the JSON kind an attribute value may take.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindBoolean
	// KindMissing marks an attribute as optional.
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindMissing:
		return "undefined"
	default:
		return "unknown"
	}
}

// KindOf classifies a decoded JSON value. Numbers, arrays, objects and null
// have no Kind and fail every rule.
func KindOf(value any) (Kind, bool) {
	switch value.(type) {
	case string:
		return KindString, true
	case bool:
		return KindBoolean, true
	default:
		return 0, false
	}
}

// AttributeRule names one attribute and the kinds it accepts.
type AttributeRule struct {
	Name  string
	Kinds []Kind
}

// Allows reports whether kind satisfies the rule.
func (r AttributeRule) Allows(kind Kind) bool {
	return slices.Contains(r.Kinds, kind)
}

// Optional reports whether the attribute may be absent.
func (r AttributeRule) Optional() bool {
	return r.Allows(KindMissing)
}

func required(name string) AttributeRule {
	return AttributeRule{Name: name, Kinds: []Kind{KindString}}
}

func optional(name string, kind Kind) AttributeRule {
	return AttributeRule{Name: name, Kinds: []Kind{kind, KindMissing}}
}

var common = []AttributeRule{required("id"), required("source-type")}

func rules(extra ...AttributeRule) []AttributeRule {
	return append(slices.Clone(common), extra...)
}

// Schema is the static rule table, one row list per source type.
var Schema = map[interfaces.SourceType][]AttributeRule{
	interfaces.SourceBook: rules(
		required("source-title"),
		required("last-name"),
		required("first-name"),
		required("source-link"),
		required("source-year"),
		required("pages"),
	),
	interfaces.SourceCensus: rules(
		required("year"),
		optional("link", KindString),
		optional("is-copy", KindBoolean),
	),
	interfaces.SourceBirthCertificate: certificate("name"),
	interfaces.SourceDeathCertificate: certificate("name"),
	interfaces.SourceMarriageCertificate: certificate("party-one", "party-two"),
	interfaces.SourceLazy: rules(
		required("source-value"),
		required("source-link"),
	),
	interfaces.SourceNewspaper: rules(
		required("name-of-publication"),
		required("source-link"),
		required("source-title"),
		required("source-date"),
		required("pages"),
		optional("is-copy", KindBoolean),
	),
	interfaces.SourceTestimonial: rules(
		required("name"),
		required("witness"),
		required("date"),
	),
	interfaces.SourceValuationRoll: rules(
		required("source-location"),
		required("source-date"),
		required("source-link"),
		optional("is-copy", KindBoolean),
	),
	interfaces.SourceWebpage: rules(
		required("name-of-website"),
		required("source-link"),
		required("date-retrieved"),
	),
	interfaces.SourceJournal: rules(
		required("name-of-publication"),
		required("source-date"),
		required("pages"),
		required("source-link"),
	),
	interfaces.SourceElectoralRegister: rules(
		required("name"),
		required("year"),
		required("source-location"),
		optional("link", KindString),
		optional("is-copy", KindBoolean),
	),
}

func certificate(parties ...string) []AttributeRule {
	row := rules()
	for _, party := range parties {
		row = append(row, required(party))
	}
	return append(row,
		required("date"),
		required("place"),
		optional("link", KindString),
		optional("is-copy", KindBoolean),
	)
}

// RulesFor returns the rule row for sourceType.
func RulesFor(sourceType interfaces.SourceType) ([]AttributeRule, bool) {
	row, ok := Schema[sourceType]
	return row, ok
}
