package cli

import (
	"github.com/spf13/cobra"

	"ctpostman/internal/tui"
	"ctpostman/internal/users"
	"ctpostman/internal/workflow"
)

func newPlayCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the wizard interactively",
		Long: `Open the full-screen client: log in or sign up, walk the four steps,
then manage the users listing.

Logs are discarded unless log.file is set, so they cannot draw over the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := tui.Deps{
				Auth:   app.Remote,
				Runner: workflow.NewRunner(app.Remote, app.Logger),
				Users:  users.NewService(app.Remote, app.Logger),
				Logger: app.Logger,
			}
			if err := app.Play(cmd.Context(), deps); err != nil {
				cmd.SilenceUsage = true
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			return nil
		},
	}
}
