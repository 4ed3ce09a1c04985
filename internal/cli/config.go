package cli

import (
	"github.com/spf13/cobra"

	"ctpostman/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(app), newConfigShowCommand(app))
	return cmd
}

func newConfigInitCommand(app *App) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if path == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					app.Printer.Error("%v", err)
					return NewExitError(1)
				}
				path = p
			}

			if err := config.Save(config.DefaultConfig(), path, force); err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			app.Printer.Success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "destination (default: the user config directory)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			data, err := config.Marshal(app.Config)
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			if app.ConfigFile != "" {
				app.Printer.Info("# loaded from %s", app.ConfigFile)
			} else {
				app.Printer.Info("# defaults (no config file found)")
			}
			app.Printer.Raw(string(data))
			return nil
		},
	}
}
