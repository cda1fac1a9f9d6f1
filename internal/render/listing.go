package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

var ErrUnknownSourceType = errors.New("render: unknown source type")

type listingRenderer func(l *interfaces.ReferenceListing) string

var listingRenderers = map[interfaces.SourceType]listingRenderer{
	interfaces.SourceTestimonial: func(l *interfaces.ReferenceListing) string {
		return fmt.Sprintf("Told by %s to %s. Testified %s.", l.String("name"), l.String("witness"), l.String("date"))
	},
	interfaces.SourceCensus: func(l *interfaces.ReferenceListing) string {
		text := certificateLink(l.String("link"), l.String("year")+" census")
		return "The " + text + " of Scotland."
	},
	interfaces.SourceBirthCertificate: func(l *interfaces.ReferenceListing) string {
		return certificate(l, "birth", l.String("name"))
	},
	interfaces.SourceDeathCertificate: func(l *interfaces.ReferenceListing) string {
		return certificate(l, "death", l.String("name"))
	},
	interfaces.SourceMarriageCertificate: func(l *interfaces.ReferenceListing) string {
		return certificate(l, "marriage", l.String("party-one")+" and "+l.String("party-two"))
	},
	interfaces.SourceValuationRoll: func(l *interfaces.ReferenceListing) string {
		opening := "Valuation roll"
		if link := l.String("source-link"); link != "" {
			opening = fmt.Sprintf(`<a href="../certificates/%s">%s</a>`, link, opening)
		}
		return fmt.Sprintf("%s at %s. Dated %s.", opening, l.String("source-location"), l.String("source-date"))
	},
	interfaces.SourceLazy: func(l *interfaces.ReferenceListing) string {
		if link := l.String("source-link"); link != "" {
			return fmt.Sprintf(`<a href="%s">%s</a>`, link, l.String("source-value"))
		}
		return l.String("source-value")
	},
	interfaces.SourceBook: func(l *interfaces.ReferenceListing) string {
		return fmt.Sprintf(`%s, %s (%s) <a href="%s"><i>%s</i></a>. pp. %s`,
			l.String("last-name"), l.String("first-name"), l.String("source-year"),
			l.String("source-link"), l.String("source-title"), l.String("pages"))
	},
	interfaces.SourceJournal: func(l *interfaces.ReferenceListing) string {
		return fmt.Sprintf(`<a href="%s">%s</a>. %s. pp. %s`,
			l.String("source-link"), l.String("name-of-publication"), l.String("source-date"), l.String("pages"))
	},
	interfaces.SourceNewspaper: func(l *interfaces.ReferenceListing) string {
		return fmt.Sprintf(`<a href="%s">"%s"</a>. <i>%s</i>. %s. pp. %s`,
			l.String("source-link"), l.String("source-title"), l.String("name-of-publication"),
			l.String("source-date"), l.String("pages"))
	},
	interfaces.SourceWebpage: func(l *interfaces.ReferenceListing) string {
		return fmt.Sprintf(`Website <a href="%s">%s</a>. Retrieved %s.`,
			l.String("source-link"), l.String("name-of-website"), l.String("date-retrieved"))
	},
	interfaces.SourceElectoralRegister: func(l *interfaces.ReferenceListing) string {
		opening := certificateLink(l.String("link"), "Electoral register")
		if l.Bool("is-copy") {
			opening = "Copy of the " + certificateLink(l.String("link"), "electoral register")
		}
		return fmt.Sprintf("%s of %s, %s. Entry for %s.", opening, l.String("source-location"), l.String("year"), l.String("name"))
	},
}

// Listing renders one bibliography line numbered by its footnote.
func (h *HTML) Listing(number int, listing *interfaces.ReferenceListing) (string, error) {
	if listing == nil {
		return "", fmt.Errorf("%w: nil listing", ErrUnknownSourceType)
	}
	line, ok := listingRenderers[listing.SourceType]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownSourceType, listing.SourceType)
	}
	return fmt.Sprintf(`<div class="reference" id="ref-%d">%d. %s</div>`, number, number, line(listing)), nil
}

func certificate(l *interfaces.ReferenceListing, kind, parties string) string {
	opening := strings.ToUpper(kind[:1]) + kind[1:] + " certificate"
	ending := "Registered"
	if l.Bool("is-copy") {
		opening = "Copy of the " + kind + " certificate"
		ending = "Issued"
	}
	date := l.String("date")
	if date == "" {
		date = "on an unknown date"
	}
	opening = certificateLink(l.String("link"), opening)
	return fmt.Sprintf("%s of %s. %s %s, %s.", opening, parties, ending, date, l.String("place"))
}

func certificateLink(link, text string) string {
	if link == "" {
		return text
	}
	return fmt.Sprintf(`<a target="_blank" href="../certificates/%s">%s</a>`, link, text)
}
