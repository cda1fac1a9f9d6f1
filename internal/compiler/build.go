package compiler

import (
	"context"

	"github.com/goliatone/go-talorgan/internal/articles"
	"github.com/goliatone/go-talorgan/internal/buildsheet"
	"github.com/goliatone/go-talorgan/internal/logging"
)

// Result is the outcome of Build.
type Result struct {
	Documents []*Document
	Sheet     *buildsheet.Sheet
	// Skipped lists the locations of documents that failed while the
	// reporter was not failing fast.
	Skipped []string
}

// Build validates the quick references and compiles every source that belongs
// to the build, in order. It stops on the first fatal error when the reporter
// fails fast and otherwise skips the failing document.
func (b *BuildContext) Build(ctx context.Context, sources []articles.Source) (*Result, error) {
	logger := logging.WithBuild(b.logger, b.Config.Name)
	if len(b.AllArticles) == 0 {
		b.AllArticles = articles.IDs(sources)
	}
	result := &Result{Sheet: buildsheet.New(b.Config.Name)}

	if err := b.ValidateLibrary(); err != nil {
		if IsAborted(err) {
			return result, err
		}
		result.Skipped = append(result.Skipped, b.libraryLocation)
	}

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !articles.ShouldBuild(b.Config.Name, b.Config.Members, source.ID) {
			continue
		}
		doc, err := b.CompileDocument(ctx, source)
		if err != nil {
			if IsAborted(err) || ctx.Err() != nil {
				logger.Error("compiler.build.aborted", "location", source.Location, "error", err)
				return result, err
			}
			logger.Warn("compiler.document.skipped", "location", source.Location, "error", err)
			result.Skipped = append(result.Skipped, source.Location)
			continue
		}
		result.Documents = append(result.Documents, doc)
		result.Sheet.Add(buildsheet.Key(source.FileType, source.ID), doc.Metadata, source.Checksum)
	}

	logger.Info("compiler.build.completed",
		"documents", len(result.Documents),
		"skipped", len(result.Skipped),
		"errors", b.Diagnostics.Errors(),
		"warnings", b.Diagnostics.Warnings(),
	)
	return result, nil
}
