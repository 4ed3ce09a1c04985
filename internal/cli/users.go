package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
	"ctpostman/internal/users"
	"ctpostman/internal/workflow"
)

func listingOf(res workflow.StepResult) api.Listing {
	return api.Listing{Message: res.Message, Users: res.Users}
}

// methodNames lists the verbs the selector offers, e.g. "GET, POST".
func methodNames() string {
	names := make([]string, 0, len(method.All()))
	for _, m := range method.All() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func newUsersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List or delete demo users",
	}
	cmd.AddCommand(newUsersListCommand(app), newUsersDeleteCommand(app))
	return cmd
}

func newUsersListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the users listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			listing, err := users.NewService(app.Remote, app.Logger).List(cmd.Context())
			if err != nil {
				app.Printer.Error("%s", userMessage(err))
				return NewExitError(1)
			}
			app.Printer.Users(listing)
			return nil
		},
	}
}

func newUsersDeleteCommand(app *App) *cobra.Command {
	var verb string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user by id",
		Long: `Delete a user by id. Like the wizard steps, the request is only sent
when --method is DELETE.

Example:
  ctpostman users delete 65f0c0ffee --method DELETE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc := users.NewService(app.Remote, app.Logger)

			// An unknown verb is still a wrong verb; say why before the
			// service rejects it.
			m, err := method.Parse(verb)
			if err != nil && strings.TrimSpace(verb) != "" {
				app.Printer.Info("%s (choose one of %s)", err, methodNames())
			}
			res, err := svc.Delete(cmd.Context(), m, args[0])
			if err != nil {
				app.Printer.Error("%s", err.Error())
				return NewExitError(1)
			}

			msg := res.Message
			if msg == "" {
				msg = "User deleted."
			}
			app.Printer.Success("%s", msg)

			listing, err := svc.List(cmd.Context())
			if err != nil {
				app.Printer.Error("%s", userMessage(err))
				return NewExitError(1)
			}
			app.Printer.Users(listing)
			return nil
		},
	}

	cmd.Flags().StringVarP(&verb, "method", "X", "", "HTTP method to send (must be DELETE)")
	return cmd
}
