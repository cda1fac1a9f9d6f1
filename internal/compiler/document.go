package compiler

import (
	"context"
	"fmt"

	"github.com/goliatone/go-talorgan/internal/articles"
	"github.com/goliatone/go-talorgan/internal/citations"
	"github.com/goliatone/go-talorgan/internal/dates"
	"github.com/goliatone/go-talorgan/internal/identity"
	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/internal/markup"
	"github.com/goliatone/go-talorgan/internal/references"
	"github.com/goliatone/go-talorgan/internal/render"
	"github.com/goliatone/go-talorgan/internal/validation"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// Document is a compiled article.
type Document struct {
	Source    articles.Source
	State     *DocumentState
	Elements  []interfaces.Element
	Metadata  interfaces.Metadata
	Body      string
	Footnotes []citations.Footnote
	// Bibliography is the rendered references block, empty without citations.
	Bibliography string
	// HTML is the complete page fragment.
	HTML string
}

// CompileDocument compiles one source. Recoverable problems become warnings;
// the returned error is a *Failure already reported to the diagnostics.
func (b *BuildContext) CompileDocument(ctx context.Context, source articles.Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := b.Begin(source.Location)
	logger := logging.WithDocument(b.logger, source.Location, source.FileType)

	parsed, err := markup.Parse(string(source.Raw), markup.WithInfoValidator(b.validateInfo))
	if err != nil {
		return nil, b.fail(err, false)
	}
	doc := &Document{
		Source:   source,
		State:    state,
		Elements: parsed.Elements,
		Metadata: parsed.Metadata,
	}
	doc.Metadata.ID = identity.ArticleUUID(source.FileType, source.ID)
	doc.Metadata.FileType = source.FileType

	if err := b.walk(doc); err != nil {
		return nil, err
	}

	body, err := b.renderer.Body(doc.Elements)
	if err != nil {
		return nil, b.fail(err, false)
	}
	resolved := b.resolver.Resolve(body, b.Scope())
	for _, warning := range resolved.Warnings {
		b.Diagnostics.Warning(b.Location, warning)
	}
	state.Citations = resolved.Citations
	doc.Body = resolved.Text

	footnotes, err := citations.Bibliography(state.Citations, state.Listings)
	if err != nil {
		return nil, b.fail(err, false)
	}
	lines := make([]string, 0, len(footnotes))
	for _, footnote := range footnotes {
		line, err := b.renderer.Listing(footnote.Number, footnote.Listing)
		if err != nil {
			return nil, b.fail(err, false)
		}
		lines = append(lines, line)
	}
	doc.Footnotes = footnotes
	doc.Bibliography = render.Bibliography(lines)
	doc.HTML = b.renderer.Article(doc.Metadata, doc.Body, doc.Bibliography)

	logger.Debug("compiler.document.compiled",
		"elements", len(doc.Elements),
		"citations", len(state.Citations),
		"listings", state.Listings.Len(),
	)
	return doc, nil
}

// validateInfo checks the info object shape and normalises its dates. Date
// problems are warnings.
func (b *BuildContext) validateInfo(info *interfaces.InfoTag, fields map[string]any) error {
	if err := validation.ValidateObject(interfaces.ObjectInfo, fields); err != nil {
		return err
	}
	var issues []dates.Issue
	var found []dates.Issue
	info.Born, found = dates.Normalize(info.Born)
	issues = append(issues, found...)
	info.Died, found = dates.Normalize(info.Died)
	issues = append(issues, found...)
	for _, issue := range issues {
		b.Diagnostics.Warning(b.Location, issue.String())
	}
	return nil
}

// walk checks object shapes, validates and records listings, and keeps the
// last info box merged with the info dates.
func (b *BuildContext) walk(doc *Document) error {
	var box *interfaces.InfoBox
	for _, element := range doc.Elements {
		object, ok := element.(interfaces.EmbeddedObject)
		if !ok {
			continue
		}
		if err := validation.ValidateObject(object.Type, object.Fields); err != nil {
			return b.fail(fmt.Errorf("line %d: %w", object.Line, err), false)
		}
		switch payload := object.Payload.(type) {
		case *interfaces.ReferenceListing:
			if err := references.Check(payload, b.Diagnostics, b.Location); err != nil {
				return b.fail(err, true)
			}
			if doc.State.Listings.Record(payload) {
				b.Diagnostics.Warning(b.Location,
					fmt.Sprintf("reference with ID of '%s' is defined more than once, using the last definition", payload.ID))
			}
		case *interfaces.InfoBox:
			box = payload
		}
	}
	if box != nil {
		merged := render.MergeInfoBox(*box, doc.Metadata)
		doc.Metadata.InfoBox = &merged
	}
	return nil
}
