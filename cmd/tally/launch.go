package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/config"
	"github.com/joe5h/tally/internal/launcher"
)

func launchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Launch the time tracker app",
		Long: `Launch the standalone tracker binary. The path comes from tracker.path
in the config; by default the binary is expected next to tally itself.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := viper.GetString("tracker.path")
			if path == "" {
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("failed to locate executable: %w", err)
				}
				path = filepath.Join(filepath.Dir(exe), "tracker")
			}
			path = config.ExpandPath(path)

			if err := launcher.Open(path); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Tracker launched"))
			return nil
		},
	}
}
