package talorgan

import "github.com/goliatone/go-talorgan/internal/runtimeconfig"

var (
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrDataDirRequired         = runtimeconfig.ErrDataDirRequired
	ErrFileTypesRequired       = runtimeconfig.ErrFileTypesRequired
	ErrFileTypeInvalid         = runtimeconfig.ErrFileTypeInvalid
	ErrBuildSheetFeatureNeeded = runtimeconfig.ErrBuildSheetFeatureNeeded
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrBuildNotFound           = runtimeconfig.ErrBuildNotFound
	ErrBuildInvalid            = runtimeconfig.ErrBuildInvalid
)

type (
	Config             = runtimeconfig.Config
	DiagnosticsConfig  = runtimeconfig.DiagnosticsConfig
	RenderConfig       = runtimeconfig.RenderConfig
	BuildSheetConfig   = runtimeconfig.BuildSheetConfig
	Features           = runtimeconfig.Features
	LoggingConfig      = runtimeconfig.LoggingConfig
	BuildConfiguration = runtimeconfig.BuildConfiguration
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
