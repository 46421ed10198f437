package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Contributors below this mod count are elided from the table; the full list
// lives in the database repository.
const contributorCutoff = 20

var contributorsCmd = &cobra.Command{
	Use:   "contributors",
	Short: "Show the score database contributors",
	Long: `Contributors lists who categorized the mods in the score database,
ordered by the number of mods they covered. Entries below 20 mods are
elided; see the database repository for the full list.`,
	Args: cobra.NoArgs,
	RunE: runContributors,
}

func runContributors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := loadScoreDatabase(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Database v%d (%s), %d contributors.\n\n", db.Version, db.Timestamp, len(db.Contributors))
	fmt.Printf("%-32s %6s\n", "Contributor", "Mods")
	shown := 0
	for _, c := range db.TopContributors(0) {
		if c.Mods < contributorCutoff {
			continue
		}
		fmt.Printf("%-32s %6d\n", c.Name, c.Mods)
		shown++
	}
	if rest := len(db.Contributors) - shown; rest > 0 {
		fmt.Printf("\n(%d more with fewer than %d mods.)\n", rest, contributorCutoff)
	}
	fmt.Println("\nFull list: https://github.com/shakeyourbunny/RWMSDB")
	return nil
}
