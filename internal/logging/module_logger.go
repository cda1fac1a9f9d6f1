package logging

import (
	"context"

	"github.com/goliatone/go-talorgan/pkg/interfaces"
)

const (
	ModuleRoot      = "talorgan"
	ModuleCompiler  = "talorgan.compiler"
	ModuleCitations = "talorgan.citations"
	ModuleCommands  = "talorgan.commands"
	ModuleArticles  = "talorgan.articles"
)

// ModuleLogger resolves the logger for module from provider and tags it with a
// module field. A nil provider yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = ModuleRoot
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func CompilerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleCompiler)
}

func CitationsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleCitations)
}

func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleArticles)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
