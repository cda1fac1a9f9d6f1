package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-talorgan/internal/dates"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Body renders the element sequence in order. Info boxes and reference
// listings render elsewhere and produce no body output, as do unknown objects.
func (h *HTML) Body(elements []interfaces.Element) (string, error) {
	parts := make([]string, 0, len(elements))
	for _, element := range elements {
		switch el := element.(type) {
		case interfaces.Paragraph:
			p, err := h.Paragraph(el.Text)
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		case interfaces.Heading:
			parts = append(parts, h.Heading(el.Level, el.Text))
		case interfaces.EmbeddedObject:
			switch payload := el.Payload.(type) {
			case *interfaces.Image:
				parts = append(parts, h.Image(*payload))
			case *interfaces.Gallery:
				parts = append(parts, h.Gallery(*payload))
			}
		}
	}
	return strings.Join(parts, "\n"), nil
}

// MergeInfoBox returns a copy of box whose Born and Died rows start with the
// dates from the info tag. A died date of "present" is not shown. Missing rows
// are appended.
func MergeInfoBox(box interfaces.InfoBox, meta interfaces.Metadata) interfaces.InfoBox {
	merged := box
	merged.Entries = make([]interfaces.InfoBoxEntry, len(box.Entries))
	for i, entry := range box.Entries {
		merged.Entries[i] = interfaces.InfoBoxEntry{Label: entry.Label, Values: slices.Clone(entry.Values)}
	}
	if meta.Info == nil {
		return merged
	}
	if meta.Born != "" {
		merged.Entries = prepend(merged.Entries, "Born", meta.Born)
	}
	if meta.Died != "" && meta.Died != dates.Present {
		merged.Entries = prepend(merged.Entries, "Died", meta.Died)
	}
	return merged
}

func prepend(entries []interfaces.InfoBoxEntry, label, value string) []interfaces.InfoBoxEntry {
	for i := range entries {
		if entries[i].Label == label {
			entries[i].Values = append([]string{value}, entries[i].Values...)
			return entries
		}
	}
	return append(entries, interfaces.InfoBoxEntry{Label: label, Values: []string{value}})
}

// ImagesColumn renders the info box followed by the info tag images.
func (h *HTML) ImagesColumn(meta interfaces.Metadata) string {
	parts := []string{}
	if meta.InfoBox != nil {
		parts = append(parts, h.InfoBox(*meta.InfoBox))
	}
	for _, image := range meta.Images {
		parts = append(parts, fmt.Sprintf(`<div class="box"><img src="%s%s"/>%s</div>`, h.mediaPrefix, image.Src, caption(image.Caption)))
	}
	return strings.Join(parts, "\n")
}

// Header renders the page title block.
func (h *HTML) Header(meta interfaces.Metadata) string {
	var subtitle strings.Builder
	if meta.ArticleType == "person" {
		fmt.Fprintf(&subtitle, `<h4 class="page-subtitle">%s &mdash; %s</h4>`, orUnknown(meta.Born), orUnknown(meta.Died))
	}
	if meta.Subtitle != "" {
		fmt.Fprintf(&subtitle, `<h4 class="page-subtitle">%s</h4>`, meta.Subtitle)
	}
	return fmt.Sprintf(`<div class="header"><div class="container"><h1 class="page-title">%s</h1>%s</div></div>`, meta.Name, subtitle.String())
}

func orUnknown(value string) string {
	if value == "" {
		return dates.Unknown
	}
	return value
}

// Bibliography wraps rendered listing lines. No lines renders nothing.
func Bibliography(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return `<div class="references"><h2 id="references" class="title">References</h2>` + "\n" +
		strings.Join(lines, "\n") + "\n</div>"
}

// Article assembles the page fragment.
func (h *HTML) Article(meta interfaces.Metadata, body, bibliography string) string {
	var out strings.Builder
	out.WriteString(h.Header(meta))
	out.WriteString("\n<div class=\"main-body\"><div class=\"container\">\n")
	if meta.IsSplitFormat() {
		out.WriteString("<div class=\"main-body-split\">\n")
	}
	out.WriteString("<div>\n")
	out.WriteString(body)
	if bibliography != "" {
		out.WriteString("\n")
		out.WriteString(bibliography)
	}
	out.WriteString("\n</div>\n<div class=\"images-column\">\n")
	out.WriteString(h.ImagesColumn(meta))
	out.WriteString("\n</div>\n")
	if meta.IsSplitFormat() {
		out.WriteString("</div>\n")
	}
	out.WriteString("</div></div>\n")
	return out.String()
}
