package cli

import "github.com/spf13/cobra"

func newStepsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "Show the wizard's routing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.Routes(app.router().Rules())
			return nil
		},
	}
}
