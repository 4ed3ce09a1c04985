package cli

import (
	"github.com/spf13/cobra"

	"ctpostman/internal/session"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the auth API",
		Long: `Exchange an email and password for a token. The session is not saved;
"play" asks for credentials on every start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := session.Login(cmd.Context(), app.Remote, email, password)
			if err != nil {
				app.Printer.Error("%s", userMessage(err))
				return NewExitError(1)
			}
			app.Printer.Success("Logged in as %s", s.User)
			app.Printer.Info("token: %s", s.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCommand(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the auth API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := session.Signup(cmd.Context(), app.Remote, name, email, password)
			if err != nil {
				app.Printer.Error("%s", userMessage(err))
				return NewExitError(1)
			}
			app.Printer.Success("Signed up as %s", s.User)
			app.Printer.Info("token: %s", s.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
