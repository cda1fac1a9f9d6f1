package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrOutputDirRequired       = errors.New("talorgan config: output directory is required")
	ErrDataDirRequired         = errors.New("talorgan config: data directory is required")
	ErrFileTypesRequired       = errors.New("talorgan config: at least one file type is required")
	ErrFileTypeInvalid         = errors.New("talorgan config: file type is invalid")
	ErrBuildSheetFeatureNeeded = errors.New("talorgan config: build sheet path requires the build sheet feature")
	ErrLoggingProviderRequired = errors.New("talorgan config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("talorgan config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("talorgan config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("talorgan config: logging format is invalid")
)

var fileTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Config aggregates the settings of one compiler run.
type Config struct {
	// ProjectDir is the root holding data/ and receiving the output directory.
	ProjectDir      string
	DataDir         string
	OutputDir       string
	QuickReferences string
	FileTypes       []string
	Diagnostics     DiagnosticsConfig
	Render          RenderConfig
	BuildSheet      BuildSheetConfig
	Features        Features
	Logging         LoggingConfig
}

// DiagnosticsConfig controls error policy and output.
type DiagnosticsConfig struct {
	// FailFast stops the build on the first fatal error. When false the
	// failing document is skipped.
	FailFast bool
	Color    bool
}

// RenderConfig mirrors render.Options.
type RenderConfig struct {
	Extensions []string
	HardWraps  bool
	Safe       bool
}

// BuildSheetConfig names the search summary output.
type BuildSheetConfig struct {
	FileName string
}

// Features toggles optional outputs.
type Features struct {
	BuildSheet bool
	Logger     bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings used by the CLI when no flags override them.
func DefaultConfig() Config {
	return Config{
		ProjectDir:      ".",
		DataDir:         "data",
		OutputDir:       "build",
		QuickReferences: "data/quick_references.json",
		FileTypes:       []string{"wiki", "sheet"},
		Diagnostics: DiagnosticsConfig{
			FailFast: true,
		},
		BuildSheet: BuildSheetConfig{
			FileName: "build_sheet.json",
		},
		Features: Features{
			BuildSheet: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks and returns a sentinel error for the
// first problem found.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return ErrDataDirRequired
	}
	if len(cfg.FileTypes) == 0 {
		return ErrFileTypesRequired
	}
	if err := validation.Validate(cfg.FileTypes,
		validation.Each(validation.Required, validation.Match(fileTypePattern)),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrFileTypeInvalid, err)
	}
	if !cfg.Features.BuildSheet && strings.TrimSpace(cfg.BuildSheet.FileName) != "" && cfg.BuildSheet.FileName != DefaultConfig().BuildSheet.FileName {
		return ErrBuildSheetFeatureNeeded
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	return provider == "console" || provider == "gologger"
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
