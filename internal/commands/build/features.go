package buildcmd

import "github.com/goliatone/go-talorgan/internal/runtimeconfig"

// FeatureGates exposes runtime feature toggles read by the build handler.
// Callers supply closures over Config.Features so the handler stays decoupled
// from configuration.
type FeatureGates struct {
	BuildSheetEnabled func() bool
}

func (g FeatureGates) buildSheetEnabled() bool {
	if g.BuildSheetEnabled == nil {
		return true
	}
	return g.BuildSheetEnabled()
}

// wantsBuildSheet lets a named build that declares features leave the build
// sheet out by not listing it.
func wantsBuildSheet(build runtimeconfig.BuildConfiguration) bool {
	if build.IsFull() || len(build.Features) == 0 {
		return true
	}
	return build.HasFeature(runtimeconfig.FeatureBuildSheet)
}
