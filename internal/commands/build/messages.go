package buildcmd

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const buildMessageType = "talorgan.build"

var buildNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// BuildCommand compiles the articles of one build configuration found in
// the project at ProjectDir.
type BuildCommand struct {
	// ProjectDir is the project root holding data/.
	ProjectDir string `json:"project_dir"`
	// Name selects data/builds/<name>.json. Empty means the full build.
	Name string `json:"name,omitempty"`
	// ContinueOnError skips failing documents instead of stopping the build.
	ContinueOnError bool `json:"continue_on_error,omitempty"`
	// DryRun compiles without writing artifacts.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildCommand) Type() string { return buildMessageType }

// Validate ensures the project directory is present and the build name cannot
// escape the builds directory.
func (cmd BuildCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ProjectDir, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("talorgan.build.project_dir_required", "project directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Name, validation.By(func(value any) error {
			name, _ := value.(string)
			if name != "" && !buildNamePattern.MatchString(name) {
				return validation.NewError("talorgan.build.name_invalid", "build name may only contain letters, digits, '.', '_' and '-'")
			}
			return nil
		})),
	)
}

// BuildName returns the effective build name.
func (cmd BuildCommand) BuildName() string {
	if strings.TrimSpace(cmd.Name) == "" {
		return "full"
	}
	return strings.TrimSpace(cmd.Name)
}
