package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

func listing(attrs ...any) *interfaces.ReferenceListing {
	out := []interfaces.Attribute{}
	for i := 0; i+1 < len(attrs); i += 2 {
		out = append(out, interfaces.Attribute{Name: attrs[i].(string), Value: attrs[i+1]})
	}
	return interfaces.NewReferenceListing(out)
}

func TestMarkers(t *testing.T) {
	h := New(Options{})
	if got := h.Citation(2); got != `<sup><a href="#ref-2">[2]</a></sup>` {
		t.Fatalf("unexpected citation marker %q", got)
	}
	if got := h.Link("Jane", "jane_doe"); got != `<a href="jane_doe.html">Jane</a>` {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestParagraphKeepsMarkers(t *testing.T) {
	h := New(Options{})
	got, err := h.Paragraph("Born in *Glasgow* [b1], see [[Oban|oban_town]].")
	if err != nil {
		t.Fatalf("Paragraph: %v", err)
	}
	want := "<p>Born in <em>Glasgow</em> [b1], see [[Oban|oban_town]].</p>"
	if got != want {
		t.Fatalf("unexpected paragraph\nwant: %s\ngot:  %s", want, got)
	}
}

func TestParagraphIgnoresBlockAndLinkSyntax(t *testing.T) {
	h := New(Options{})
	cases := map[string]string{
		"She was born [a](1850) in Glasgow.": "<p>She was born [a](1850) in Glasgow.</p>",
		"1920. The family moved [a].":        "<p>1920. The family moved [a].</p>",
		"- a dash opens the line":            "<p>- a dash opens the line</p>",
		"> quoted":                           "<p>&gt; quoted</p>",
		"[a]: https://example.com":           "<p>[a]: https://example.com</p>",
		"<https://example.com>":              "<p>&lt;https://example.com&gt;</p>",
	}
	for text, want := range cases {
		got, err := h.Paragraph(text)
		if err != nil {
			t.Fatalf("Paragraph(%q): %v", text, err)
		}
		if got != want {
			t.Fatalf("Paragraph(%q)\nwant: %s\ngot:  %s", text, want, got)
		}
	}
}

func TestHeadingAnchor(t *testing.T) {
	h := New(Options{})
	want, _ := slug.Normalize("Early Life")
	got := h.Heading(2, "Early Life")
	if got != `<h2 id="`+want+`" class="title">Early Life</h2>` {
		t.Fatalf("unexpected heading %q", got)
	}
	if !strings.HasPrefix(h.Heading(9, "x"), "<h6") {
		t.Fatalf("levels are clamped to h6")
	}
}

func TestAnchorFoldsAccents(t *testing.T) {
	cases := map[string]string{
		"Ancêtres [a]":       "ancetres-a",
		"Seanchas Ó Dónaill": "seanchas-o-donaill",
		"Early Life":         "early-life",
	}
	for text, want := range cases {
		if got := Anchor(text); got != want {
			t.Fatalf("Anchor(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestListingLines(t *testing.T) {
	h := New(Options{})
	cases := []struct {
		listing *interfaces.ReferenceListing
		want    string
	}{
		{
			listing("id", "t", "source-type", "testimonial", "name", "Ann", "witness", "Bob", "date", "1990"),
			`<div class="reference" id="ref-1">1. Told by Ann to Bob. Testified 1990.</div>`,
		},
		{
			listing("id", "c", "source-type", "census", "year", "1901", "link", "c1901.pdf"),
			`<div class="reference" id="ref-1">1. The <a target="_blank" href="../certificates/c1901.pdf">1901 census</a> of Scotland.</div>`,
		},
		{
			listing("id", "b", "source-type", "birth-certificate", "name", "Jane", "date", "", "place", "Glasgow", "is-copy", true),
			`<div class="reference" id="ref-1">1. Copy of the birth certificate of Jane. Issued on an unknown date, Glasgow.</div>`,
		},
		{
			listing("id", "m", "source-type", "marriage-certificate", "party-one", "A", "party-two", "B", "date", "1 May 1950", "place", "Oban"),
			`<div class="reference" id="ref-1">1. Marriage certificate of A and B. Registered 1 May 1950, Oban.</div>`,
		},
		{
			listing("id", "k", "source-type", "book", "last-name", "Doe", "first-name", "J", "source-year", "1990",
				"source-link", "http://x", "source-title", "History", "pages", "4-5"),
			`<div class="reference" id="ref-1">1. Doe, J (1990) <a href="http://x"><i>History</i></a>. pp. 4-5</div>`,
		},
		{
			listing("id", "l", "source-type", "lazy", "source-value", "Family bible", "source-link", ""),
			`<div class="reference" id="ref-1">1. Family bible</div>`,
		},
	}
	for _, tc := range cases {
		got, err := h.Listing(1, tc.listing)
		if err != nil {
			t.Fatalf("%s: %v", tc.listing.SourceType, err)
		}
		if got != tc.want {
			t.Fatalf("%s\nwant: %s\ngot:  %s", tc.listing.SourceType, tc.want, got)
		}
	}
}

func TestListingUnknownSourceType(t *testing.T) {
	_, err := New(Options{}).Listing(1, listing("id", "w", "source-type", "website"))
	if !errors.Is(err, ErrUnknownSourceType) {
		t.Fatalf("expected ErrUnknownSourceType, got %v", err)
	}
}

func TestEverySourceTypeRenders(t *testing.T) {
	all := []interfaces.SourceType{
		interfaces.SourceBook, interfaces.SourceCensus, interfaces.SourceBirthCertificate,
		interfaces.SourceDeathCertificate, interfaces.SourceLazy, interfaces.SourceMarriageCertificate,
		interfaces.SourceNewspaper, interfaces.SourceTestimonial, interfaces.SourceValuationRoll,
		interfaces.SourceWebpage, interfaces.SourceJournal, interfaces.SourceElectoralRegister,
	}
	for _, sourceType := range all {
		if _, ok := listingRenderers[sourceType]; !ok {
			t.Fatalf("no renderer for %s", sourceType)
		}
	}
}

func TestMergeInfoBox(t *testing.T) {
	box := interfaces.InfoBox{Entries: []interfaces.InfoBoxEntry{
		{Label: "Born", Values: []string{"Glasgow"}},
		{Label: "Spouse", Values: []string{"John"}},
	}}
	meta := interfaces.Metadata{Info: &interfaces.InfoTag{}, Born: "3-3-1920", Died: "present"}

	merged := MergeInfoBox(box, meta)
	if got := merged.Entries[0].Values; len(got) != 2 || got[0] != "3-3-1920" || got[1] != "Glasgow" {
		t.Fatalf("unexpected born row %v", got)
	}
	if len(merged.Entries) != 2 {
		t.Fatalf("present died date must not add a row, got %#v", merged.Entries)
	}
	if len(box.Entries[0].Values) != 1 {
		t.Fatalf("input box must not be mutated")
	}

	meta.Died = "1-1-1990"
	merged = MergeInfoBox(box, meta)
	if last := merged.Entries[len(merged.Entries)-1]; last.Label != "Died" || last.Values[0] != "1-1-1990" {
		t.Fatalf("expected appended died row, got %#v", last)
	}
}

func TestBodySkipsSideObjects(t *testing.T) {
	h := New(Options{})
	body, err := h.Body([]interfaces.Element{
		interfaces.Heading{Level: 1, Text: "Life"},
		interfaces.EmbeddedObject{Type: "infobox", Payload: &interfaces.InfoBox{}},
		interfaces.EmbeddedObject{Type: "img", Payload: &interfaces.Image{Src: "a.jpg", Float: "left"}},
		interfaces.EmbeddedObject{Type: "ref-listing", Payload: listing("id", "x", "source-type", "lazy")},
		interfaces.Paragraph{Text: "Text"},
	})
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	lines := strings.Split(body, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected heading, image and paragraph, got %q", body)
	}
	if lines[1] != `<div class="small-box box left-box"><img src="../media/a.jpg"/></div>` {
		t.Fatalf("unexpected image %q", lines[1])
	}
}

func TestArticleSplitFormat(t *testing.T) {
	h := New(Options{})
	meta := interfaces.Metadata{Name: "Jane", ArticleType: "person", Born: "3-3-1920"}
	page := h.Article(meta, "<p>x</p>", Bibliography([]string{"line"}))
	if !strings.Contains(page, `class="main-body-split"`) {
		t.Fatalf("person article should use the split layout")
	}
	if !strings.Contains(page, "3-3-1920 &mdash; Unknown") {
		t.Fatalf("missing life dates in %q", page)
	}
	if Bibliography(nil) != "" {
		t.Fatalf("empty bibliography should render nothing")
	}
}
