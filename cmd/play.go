package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/divvy/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start practicing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp collects flags and launches the TUI.
func runApp(cmd *cobra.Command) error {
	player, _ := cmd.Flags().GetString("player")
	configPath, _ := cmd.Flags().GetString("config")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return app.Run(context.Background(), app.Options{
		PlayerName: player,
		ConfigPath: configPath,
		DataDir:    dataDir,
		Verbose:    verbose,
	})
}
