// Package cli provides the command-line interface for ctpostman.
//
// The CLI is built on Cobra. Every command receives an [App] holding its
// dependencies, so tests can swap the remote API, the printer and the
// interactive program for fakes.
//
// Key types:
//   - [App] is the dependency container shared by commands
//   - [ExitError] carries a process exit code out of a command
//   - [ExecuteResult] is what [RunWithConfig] returns instead of exiting
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ctpostman/internal/api"
	"ctpostman/internal/config"
	"ctpostman/internal/logging"
	"ctpostman/internal/output"
	"ctpostman/internal/router"
	"ctpostman/internal/session"
	"ctpostman/internal/tui"
	"ctpostman/internal/users"
	"ctpostman/internal/workflow"
)

// Remote is the demo API surface used by the commands.
//
// The [api.Client] type implements this interface.
type Remote interface {
	workflow.Remote
	users.Remote
	session.Authenticator
}

// PlayFunc runs the interactive program.
type PlayFunc func(ctx context.Context, deps tui.Deps) error

// App holds the dependencies shared by all commands.
//
// Remote and Logger may be left nil; the root command's pre-run fills them
// from Config once flags are parsed.
type App struct {
	Config     *config.Config
	ConfigFile string
	Remote     Remote
	Printer    *output.Printer
	Logger     *zap.Logger
	Router     *router.Router
	Play       PlayFunc
}

// NewApp creates an [App] for cfg with production defaults.
func NewApp(cfg *config.Config) *App {
	printer := output.NewPrinter()
	if !cfg.Output.Color {
		printer.SetColor(false)
	}
	return &App{
		Config:  cfg,
		Printer: printer,
		Router:  router.NewRouter(),
		Play:    tui.Run,
	}
}

func (a *App) router() *router.Router {
	if a.Router == nil {
		return router.NewRouter()
	}
	return a.Router
}

// setup builds the logger and the API client if they were not injected.
func (a *App) setup(cmd *cobra.Command, verbose bool) error {
	if a.Logger == nil {
		opts := logging.Options{
			Level:   a.Config.Log.Level,
			File:    a.Config.Log.File,
			Verbose: verbose,
		}
		if opts.File == "" && cmd.Name() == "play" {
			// stderr would draw over the full-screen UI
			a.Logger = zap.NewNop()
		} else {
			logger, err := logging.New(opts)
			if err != nil {
				return err
			}
			a.Logger = logger
		}
	}

	if a.Remote == nil {
		a.Remote = api.NewClient(a.Config.API.UsersURL, a.Config.API.AuthURL,
			api.WithLogger(a.Logger),
			api.WithTimeout(a.Config.API.RequestTimeout))
	}
	return nil
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(app *App) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ctpostman",
		Short: "Practice HTTP verbs against a live demo API",
		Long: `ctpostman walks you through a four-step exercise against a demo users API.
Each step only fires when you pick the HTTP method it expects:

  CREATE    POST   sign up a record and receive a code
  VERIFY    GET    read the record back with that code
  UPDATE    PATCH  rename the record by its id
  REDIRECT  GET    list all users

Run "ctpostman play" for the interactive version or "ctpostman run" to script it.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd, verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newPlayCommand(app),
		newRunCommand(app),
		newUsersCommand(app),
		newLoginCommand(app),
		newSignupCommand(app),
		newStepsCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// ExecuteResult is the outcome of a CLI invocation.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig runs the CLI with os.Args and cfg and reports the exit code
// instead of exiting.
func RunWithConfig(cfg *config.Config, configFile string) ExecuteResult {
	app := NewApp(cfg)
	app.ConfigFile = configFile

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand(app)
	err := rootCmd.ExecuteContext(ctx)
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}

	if err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute loads the configuration, runs the CLI and exits with its code.
func Execute() {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg, loader.ConfigFileUsed())
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
}
