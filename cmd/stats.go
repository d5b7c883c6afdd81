package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/divvy/internal/config"
	"github.com/abhisek/divvy/internal/save"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		player := resolvePlayer(cmd)
		mgr := save.NewManager(config.SaveDir(resolveDataDir(cmd)))

		f, err := mgr.Load(player)
		if err != nil {
			return err
		}

		fmt.Printf("Player:            %s\n", f.PlayerName)
		fmt.Printf("Problems solved:   %d\n", f.TotalProblemsSolved)
		fmt.Printf("Problems tried:    %d\n", f.TotalProblemsAttempted)
		fmt.Printf("Difficulty level:  %d\n", f.CurrentDifficultyLevel)
		fmt.Printf("Sessions played:   %d\n", f.SessionsPlayed)
		fmt.Printf("Collectibles:      %d\n", len(f.UnlockedRewards))

		if len(f.SessionHistory) > 0 {
			fmt.Println("\nRecent sessions:")
			start := len(f.SessionHistory) - 5
			if start < 0 {
				start = 0
			}
			for _, s := range f.SessionHistory[start:] {
				when := s.StartedAt.Local().Format("Jan 02 15:04")
				fmt.Printf("  %s  solved %d of %d\n", when, s.SolvedProblems, s.AttemptedProblems)
			}
		}
		return nil
	},
}
