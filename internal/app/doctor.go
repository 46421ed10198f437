package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rwmods/rwsort/internal/store"
	"github.com/rwmods/rwsort/internal/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Show the detected configuration and verify all paths",
	Long: `Doctor prints every directory and file rwsort would use, marking the
ones that exist. Run it first when sort cannot find the game.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("rwsort %s on %s\n\n", version.Version, runtime.GOOS)

	printPathCheck("Steam directory", cfg.SteamDir(), true)
	printPathCheck("RimWorld directory", cfg.GameDir(), true)
	printPathCheck("Game config directory", cfg.GameConfigDir(), true)
	printPathCheck("ModsConfig.xml", cfg.ModsConfigFile(), false)
	printPathCheck("Workshop mods", cfg.WorkshopDir(), true)
	printPathCheck("Local mods", cfg.LocalModsDir(), true)

	fmt.Println()
	fmt.Printf("Update check ....: %v\n", cfg.Behaviour.UpdateCheck)
	fmt.Printf("Keep unknown ....: %v\n", cfg.Behaviour.KeepUnknown)
	fmt.Printf("Steam disabled ..: %v\n", cfg.Behaviour.DisableSteam)
	fmt.Printf("Offline .........: %v\n", cfg.Behaviour.Offline)
	if cfg.GitHubConfigured() {
		fmt.Printf("GitHub user .....: %s (token set, not shown)\n", cfg.GitHub.User)
	} else {
		fmt.Println("GitHub user .....: not configured (report submission disabled)")
	}

	fmt.Println()
	printCacheStatus()

	if !cfg.GameDetected() {
		fmt.Println("\nNo RimWorld installation detected. Set paths in the configuration file")
		fmt.Println("or pass --drm-free-dir / --game-config-dir to sort.")
	}
	return nil
}

// printPathCheck prints one OK/MISSING line. wantDir distinguishes directory
// checks from plain file checks; an empty path means the component is
// disabled or undetectable on this platform.
func printPathCheck(label, path string, wantDir bool) {
	status := "MISSING"
	switch info, err := os.Stat(path); {
	case path == "":
		path, status = "(not set)", "--"
	case err != nil:
	case wantDir == info.IsDir():
		status = "OK"
	}
	fmt.Printf("%-8s %-22s %s\n", status, label, path)
}

func printCacheStatus() {
	path, err := getCachePath()
	if err != nil {
		fmt.Printf("Database cache ..: unavailable (%v)\n", err)
		return
	}
	st, err := store.New(path)
	if err != nil {
		fmt.Printf("Database cache ..: %s (unreadable: %v)\n", path, err)
		return
	}
	defer st.Close()
	if err := st.CreateSchema(); err != nil {
		fmt.Printf("Database cache ..: %s (unreadable: %v)\n", path, err)
		return
	}
	at, err := st.CachedAt()
	if err != nil || at.IsZero() {
		fmt.Printf("Database cache ..: %s (empty; --offline will not work yet)\n", path)
		return
	}
	fmt.Printf("Database cache ..: %s (fetched %s)\n", path, at.Local().Format("2006-01-02 15:04"))
}
