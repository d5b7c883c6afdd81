package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/divvy/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "divvy",
	Short: "Long-division practice for kids",
	Long:  "Divvy — terminal long-division trainer that walks kids through bus-stop division one step at a time and rewards milestones with collectible animal art.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("player", "", "Player name (overrides the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml (default: XDG config dir)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for saves, artwork, and logs (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory from the --data-dir flag or the
// XDG default.
func resolveDataDir(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("data-dir"); d != "" {
		return d
	}
	return config.DefaultDataDir()
}

// resolvePlayer returns the player name from the --player flag, then the
// config file, then a generic default.
func resolvePlayer(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("player"); p != "" {
		return p
	}
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if cfg, err := config.LoadConfig(path); err == nil && cfg.Player.Name != nil {
		return *cfg.Player.Name
	}
	return "player"
}
