package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/divvy/internal/config"
	"github.com/abhisek/divvy/internal/save"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a player's save file",
	Long:  "Deletes the player's save file. Generated artwork is kept so re-earned rewards show instantly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		player := resolvePlayer(cmd)
		path := filepath.Join(config.SaveDir(resolveDataDir(cmd)), save.FileName(player))

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete all progress for %q? [y/N] ", player)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := os.Remove(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("No save file to delete.")
				return nil
			}
			return fmt.Errorf("delete save: %w", err)
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
