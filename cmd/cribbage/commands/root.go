package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"cribbage/internal/app"
	"cribbage/internal/config"
)

var (
	configPath string
	verbose    bool
	settings   app.Settings
)

func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		pterm.Error.Println(err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cribbage",
		Short:         "Cribbage scoring and simulation tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				pterm.EnableDebugMessages()
			}
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Parse(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			settings = app.SettingsFrom(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "game config JSON (default built-in rules)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs")

	root.AddCommand(scoreCmd(), simulateCmd())
	return root
}
