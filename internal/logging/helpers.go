package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

const (
	fieldLocation = "location"
	fieldFileType = "file_type"
	fieldBuild    = "build"
)

// WithFields attaches fields when the logger implements FieldsLogger and
// returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithDocument scopes a logger to one article compile. Empty values are skipped.
func WithDocument(logger interfaces.Logger, location, fileType string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(location); trimmed != "" {
		fields[fieldLocation] = trimmed
	}
	if trimmed := strings.TrimSpace(fileType); trimmed != "" {
		fields[fieldFileType] = trimmed
	}
	return WithFields(logger, fields)
}

// WithBuild tags a logger with the build configuration name.
func WithBuild(logger interfaces.Logger, name string) interfaces.Logger {
	if strings.TrimSpace(name) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldBuild: name})
}
