// Package citations rewrites citation and link markers in rendered article
// text and builds the numbered bibliography.
package citations

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Markers renders the replacement for each marker kind.
type Markers interface {
	Citation(number int) string
	Link(placeholder, target string) string
}

// Scope lists the articles a link may point at.
type Scope struct {
	// Members are the articles included in the current build.
	Members []string
	// AllArticles are every article known to the project.
	AllArticles []string
}

// LinkRef records one resolved link marker.
type LinkRef struct {
	Placeholder string
	Target      string
	Resolved    bool
}

// Result is the outcome of one Resolve pass.
type Result struct {
	Text string
	// Citations holds the distinct keys in first-occurrence order. The
	// footnote number of Citations[i] is i+1.
	Citations []string
	Links     []LinkRef
	Warnings  []string
}

// Resolver rewrites markers. It keeps no state between calls.
type Resolver struct {
	markers Markers
	logger  interfaces.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a Resolver that renders markers through markers.
func NewResolver(markers Markers, opts ...ResolverOption) *Resolver {
	r := &Resolver{markers: markers, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve scans text once and rewrites every marker. Numbering restarts at 1
// on each call.
func (r *Resolver) Resolve(text string, scope Scope) Result {
	tokens := Scan(text)

	keys := lo.Uniq(lo.FilterMap(tokens, func(token Token, _ int) (string, bool) {
		return token.Value, token.Kind == TokenCitation
	}))
	numbers := make(map[string]int, len(keys))
	for i, key := range keys {
		numbers[key] = i + 1
	}

	result := Result{Citations: keys}
	var out strings.Builder
	out.Grow(len(text))
	for _, token := range tokens {
		switch token.Kind {
		case TokenText:
			out.WriteString(token.Value)
		case TokenCitation:
			out.WriteString(r.markers.Citation(numbers[token.Value]))
		case TokenLink:
			out.WriteString(r.link(token, scope, &result))
		}
	}
	result.Text = out.String()

	r.logger.Debug("citations.resolved",
		"citations", len(result.Citations),
		"links", len(result.Links),
		"warnings", len(result.Warnings),
	)
	return result
}

func (r *Resolver) link(token Token, scope Scope, result *Result) string {
	placeholder, target := token.Placeholder(), token.Target()
	ref := LinkRef{Placeholder: placeholder, Target: target}

	var rendered string
	switch {
	case lo.Contains(scope.Members, target):
		ref.Resolved = true
		rendered = r.markers.Link(placeholder, target)
	case lo.Contains(scope.AllArticles, target):
		rendered = placeholder
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("article '%s' is not part of this build, linking as plain text", target))
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("cannot link to non-existing article '%s'", target))
	}
	result.Links = append(result.Links, ref)
	return rendered
}

// Lookuper resolves a citation key to its listing.
type Lookuper interface {
	Lookup(key string) (*interfaces.ReferenceListing, references.Source, error)
}

// Footnote is one numbered bibliography entry.
type Footnote struct {
	Number  int
	Key     string
	Listing *interfaces.ReferenceListing
	Source  references.Source
}

// Bibliography resolves keys in order. The first key that is ambiguous or
// unknown stops the walk with references.ErrCitationAmbiguity or
// references.ErrCitationNotFound.
func Bibliography(keys []string, registry Lookuper) ([]Footnote, error) {
	footnotes := make([]Footnote, 0, len(keys))
	for i, key := range keys {
		listing, source, err := registry.Lookup(key)
		if err != nil {
			return footnotes, err
		}
		footnotes = append(footnotes, Footnote{
			Number:  i + 1,
			Key:     key,
			Listing: listing,
			Source:  source,
		})
	}
	return footnotes, nil
}
