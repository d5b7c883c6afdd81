package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/divvy/internal/artcache"
	"github.com/abhisek/divvy/internal/config"
	"github.com/abhisek/divvy/internal/save"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List earned collectibles and their artwork",
	RunE: func(cmd *cobra.Command, args []string) error {
		player := resolvePlayer(cmd)
		dataDir := resolveDataDir(cmd)

		mgr := save.NewManager(config.SaveDir(dataDir))
		f, err := mgr.Load(player)
		if err != nil {
			return err
		}

		if len(f.UnlockedRewards) == 0 {
			fmt.Println("No collectibles yet. Solve problems to earn your first one!")
			return nil
		}

		store := artcache.NewContentStore(config.ArtDir(dataDir))
		for _, r := range f.UnlockedRewards {
			art := "(no artwork on disk)"
			if path, ok := store.Lookup(artcache.Slugify(r.SubjectName)); ok {
				art = path
			}
			fmt.Printf("%-16s earned at %d solved  %s\n", r.SubjectName, r.MilestoneSolvedCount, art)
		}
		return nil
	},
}
