package references

import (
	"errors"
	"testing"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

func listing(attrs ...any) *interfaces.ReferenceListing {
	out := make([]interfaces.Attribute, 0, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		out = append(out, interfaces.Attribute{Name: attrs[i].(string), Value: attrs[i+1]})
	}
	return interfaces.NewReferenceListing(out)
}

type recorder struct {
	locations []string
	messages  []string
}

func (r *recorder) Record(location, message string) {
	r.locations = append(r.locations, location)
	r.messages = append(r.messages, message)
}

func TestValidateBookMissingPagesWithBooleanYear(t *testing.T) {
	book := listing(
		"type", "ref-listing",
		"id", "b1",
		"source-type", "book",
		"source-title", "A History",
		"last-name", "Doe",
		"first-name", "John",
		"source-link", "https://example.org",
		"source-year", true,
	)

	notices := Validate(book)
	if len(notices) != 2 {
		t.Fatalf("expected exactly two notices, got %#v", notices)
	}
	if notices[0].Attribute != "source-year" || notices[0].Value != true || notices[0].Missing {
		t.Fatalf("unexpected first notice %#v", notices[0])
	}
	if notices[1].Attribute != "pages" || !notices[1].Missing || notices[1].DisplayValue() != "undefined" {
		t.Fatalf("unexpected second notice %#v", notices[1])
	}
}

func TestValidateOptionalAttributes(t *testing.T) {
	census := listing("id", "c1", "source-type", "census", "year", "1901")
	if notices := Validate(census); len(notices) != 0 {
		t.Fatalf("optional attributes may be absent, got %#v", notices)
	}

	census = listing("id", "c1", "source-type", "census", "year", "1901", "is-copy", "yes", "link", false)
	notices := Validate(census)
	if len(notices) != 2 || notices[0].Attribute != "link" || notices[1].Attribute != "is-copy" {
		t.Fatalf("expected link and is-copy notices, got %#v", notices)
	}
}

func TestValidateRejectsNumbersAndNull(t *testing.T) {
	web := listing("id", "w1", "source-type", "webpage", "name-of-website", 12.0, "source-link", nil, "date-retrieved", "1 May 2020")
	notices := Validate(web)
	if len(notices) != 2 {
		t.Fatalf("expected two notices, got %#v", notices)
	}
	if notices[1].DisplayValue() != "null" {
		t.Fatalf("expected null display value, got %q", notices[1].DisplayValue())
	}
}

func TestValidateUnknownSourceType(t *testing.T) {
	notices := Validate(listing("id", "w1", "source-type", "website"))
	if len(notices) != 1 || notices[0].Attribute != "source-type" || notices[0].Value != "website" {
		t.Fatalf("expected single source-type notice, got %#v", notices)
	}

	notices = Validate(listing("id", "w1"))
	if len(notices) != 1 || !notices[0].Missing {
		t.Fatalf("expected missing source-type notice, got %#v", notices)
	}
}

func TestEverySourceTypeHasIDAndSourceType(t *testing.T) {
	for sourceType, row := range Schema {
		if len(row) < 2 || row[0].Name != "id" || row[1].Name != "source-type" {
			t.Fatalf("%s: rule row must start with id and source-type", sourceType)
		}
	}
	if len(Schema) != 12 {
		t.Fatalf("expected 12 source types, got %d", len(Schema))
	}
}

func TestCheckRecordsEveryNoticeThenFails(t *testing.T) {
	rec := &recorder{}
	marriage := listing("id", "m1", "source-type", "marriage-certificate", "party-one", "A")

	err := Check(marriage, rec, "data/wiki/jane_doe")
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
	if len(rec.messages) != 3 {
		t.Fatalf("expected 3 recorded notices (party-two, date, place), got %v", rec.messages)
	}
	want := "Value for 'party-two' cannot be set to 'undefined' for reference with ID of 'm1'."
	if rec.messages[0] != want {
		t.Fatalf("unexpected message\nwant: %s\ngot:  %s", want, rec.messages[0])
	}
	if rec.locations[2] != "data/wiki/jane_doe" {
		t.Fatalf("unexpected location %q", rec.locations[2])
	}

	valid := listing("id", "t1", "source-type", "testimonial", "name", "Ann", "witness", "Bob", "date", "1990")
	if err := Check(valid, rec, "x"); err != nil {
		t.Fatalf("expected valid testimonial, got %v", err)
	}
}
