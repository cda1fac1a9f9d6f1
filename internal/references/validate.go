package references

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

var ErrSchemaViolation = errors.New("references: listing violates schema")

// Reporter is the part of the build diagnostics Check needs.
type Reporter interface {
	Record(location, message string)
}

// Validate checks listing against its source type's rule row and returns a
// notice per failing attribute in rule order. It never stops early.
func Validate(listing *interfaces.ReferenceListing) []interfaces.ErrorNotice {
	if listing == nil {
		return []interfaces.ErrorNotice{{Attribute: "source-type", Missing: true}}
	}
	row, ok := RulesFor(listing.SourceType)
	if !ok {
		value, present := listing.Lookup("source-type")
		return []interfaces.ErrorNotice{{Attribute: "source-type", Value: value, Missing: !present}}
	}

	notices := []interfaces.ErrorNotice{}
	for _, rule := range row {
		value, present := listing.Lookup(rule.Name)
		if !present {
			if !rule.Optional() {
				notices = append(notices, interfaces.ErrorNotice{Attribute: rule.Name, Missing: true})
			}
			continue
		}
		kind, known := KindOf(value)
		if !known || !rule.Allows(kind) {
			notices = append(notices, interfaces.ErrorNotice{Attribute: rule.Name, Value: value})
		}
	}
	return notices
}

// Check validates listing and records every notice at location before
// returning a single ErrSchemaViolation.
func Check(listing *interfaces.ReferenceListing, reporter Reporter, location string) error {
	notices := Validate(listing)
	if len(notices) == 0 {
		return nil
	}
	id := ""
	if listing != nil {
		id = listing.ID
	}
	if reporter != nil {
		for _, notice := range notices {
			reporter.Record(location, NoticeMessage(notice, id))
		}
	}
	return fmt.Errorf("%w: reference '%s' has %d invalid attributes", ErrSchemaViolation, id, len(notices))
}

// NoticeMessage renders one notice for the diagnostics output.
func NoticeMessage(notice interfaces.ErrorNotice, id string) string {
	return fmt.Sprintf("Value for '%s' cannot be set to '%s' for reference with ID of '%s'.",
		notice.Attribute, notice.DisplayValue(), id)
}
