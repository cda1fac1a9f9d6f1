package commands

import (
	"strings"

	"github.com/goliatone/go-talorgan/internal/logging"
	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

// CommandLogger returns a module-scoped logger for command handlers with the
// component fields every command entry carries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, logging.ModuleCommands+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
