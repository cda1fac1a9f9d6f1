package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-talorgan"
	"github.com/goliatone/go-talorgan/internal/commands"
	buildcmd "github.com/goliatone/go-talorgan/internal/commands/build"
)

var moduleBuilder = talorgan.New

// CLI is the command grammar.
type CLI struct {
	Build BuildCmd `cmd:"" help:"Compile the articles of a build into HTML fragments"`
}

// BuildCmd compiles one build configuration.
type BuildCmd struct {
	Name            string        `arg:"" optional:"" default:"full" help:"Build configuration name (data/builds/<name>.json)"`
	Project         string        `short:"p" default:"." help:"Project directory holding data/"`
	Output          string        `short:"o" default:"build" help:"Output directory, relative to the project"`
	ContinueOnError bool          `help:"Skip failing articles instead of stopping at the first error"`
	DryRun          bool          `help:"Compile without writing files"`
	Timeout         time.Duration `default:"5m" help:"Abort the build after this long (0 disables)"`
	Color           bool          `help:"Colour diagnostics output"`
	NoBuildSheet    bool          `help:"Do not write build_sheet.json"`
	Extensions      []string      `help:"Paragraph extensions (strikethrough, table, typographer, definition)"`
	Log             bool          `help:"Enable structured logging on stderr"`
	LogProvider     string        `enum:"console,gologger" default:"console" help:"Logging backend"`
	LogLevel        string        `default:"info" help:"Minimum log level"`
	LogFormat       string        `help:"go-logger output format (json, console, pretty)"`
}

type runState struct {
	stdout   io.Writer
	stderr   io.Writer
	exitCode int
}

func (c *BuildCmd) config() talorgan.Config {
	cfg := talorgan.DefaultConfig()
	cfg.ProjectDir = c.Project
	cfg.OutputDir = c.Output
	cfg.Diagnostics.FailFast = !c.ContinueOnError
	cfg.Diagnostics.Color = c.Color
	cfg.Features.BuildSheet = !c.NoBuildSheet
	cfg.Render.Extensions = c.Extensions
	cfg.Features.Logger = c.Log
	cfg.Logging.Provider = c.LogProvider
	cfg.Logging.Level = c.LogLevel
	cfg.Logging.Format = c.LogFormat
	return cfg
}

// Run dispatches a BuildCommand to the module's handler.
func (c *BuildCmd) Run(state *runState) error {
	module, err := moduleBuilder(c.config(),
		talorgan.WithLogWriter(state.stderr),
		talorgan.WithBuildOptions(
			buildcmd.WithDiagnosticsWriter(state.stdout),
			buildcmd.WithHandlerOptions(commands.WithTimeout[buildcmd.BuildCommand](c.Timeout)),
		),
	)
	if err != nil {
		state.exitCode = 1
		return fmt.Errorf("configure: %w", err)
	}

	handler := module.BuildHandler()
	sub := dispatcher.SubscribeCommand(handler)
	defer sub.Unsubscribe()

	err = dispatcher.Dispatch(context.Background(), talorgan.BuildCommand{
		ProjectDir:      c.Project,
		Name:            c.Name,
		ContinueOnError: c.ContinueOnError,
		DryRun:          c.DryRun,
	})
	report := handler.LastReport()
	state.exitCode = report.ExitCode
	if err != nil && report.ExitCode == 0 {
		// failed before any diagnostics were recorded
		state.exitCode = 1
		return err
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("talorgan"),
		kong.Description("Compile family encyclopedia articles"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "talorgan: %v\n", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "talorgan: %v\n", err)
		return 2
	}
	state := &runState{stdout: stdout, stderr: stderr}
	if err := ctx.Run(state); err != nil {
		fmt.Fprintf(stderr, "talorgan: %v\n", err)
	}
	return state.exitCode
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
