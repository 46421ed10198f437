package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rwmods/rwsort/internal/config"
	"github.com/rwmods/rwsort/internal/issues"
	"github.com/rwmods/rwsort/internal/logging"
	"github.com/rwmods/rwsort/internal/mods"
	"github.com/rwmods/rwsort/internal/modsconfig"
	"github.com/rwmods/rwsort/internal/report"
	"github.com/rwmods/rwsort/internal/update"
	"github.com/rwmods/rwsort/internal/version"
	"github.com/rwmods/rwsort/internal/workshop"
)

var (
	sortDryRun       bool
	sortYes          bool
	sortKeepUnknown  bool
	sortResetToCore  bool
	sortOffline      bool
	sortSkipUpdate   bool
	sortSubmitReport bool
	sortDisableSteam bool

	sortSteamDir      string
	sortDRMFreeDir    string
	sortGameConfigDir string
	sortWorkshopDir   string
	sortLocalModsDir  string

	sortCmd = &cobra.Command{
		Use:   "sort",
		Short: "Sort the active mod list and rewrite ModsConfig.xml",
		Long: `Sort downloads the current score database, scans the installed mods,
reorders the enabled ones by score and rewrites ModsConfig.xml. The
original file is copied to a timestamped backup first.

Mods the database does not know are written to a report file next to the
working directory; pass --keep-unknown to keep them at the end of the
load order instead of dropping them.`,
		Example: `  rwsort sort --dry-run
  rwsort sort --keep-unknown --yes
  rwsort sort --offline
  rwsort sort --drm-free-dir /opt/rimworld`,
		Args: cobra.NoArgs,
		RunE: runSort,
	}
)

func init() {
	sortCmd.Flags().BoolVarP(&sortDryRun, "dry-run", "n", false, "show the new order without writing anything")
	sortCmd.Flags().BoolVarP(&sortYes, "yes", "y", false, "write without asking for confirmation")
	sortCmd.Flags().BoolVarP(&sortKeepUnknown, "keep-unknown", "k", false, "keep unknown mods at the end of the load order")
	sortCmd.Flags().BoolVar(&sortResetToCore, "reset-to-core", false, "reset the load order to Core only")
	sortCmd.Flags().BoolVar(&sortOffline, "offline", false, "use the cached score database, no network access")
	sortCmd.Flags().BoolVar(&sortSkipUpdate, "skip-update-check", false, "do not check for a newer rwsort release")
	sortCmd.Flags().BoolVar(&sortSubmitReport, "submit-report", false, "file the unknown-mod report on the database issue tracker (needs github credentials)")
	sortCmd.Flags().BoolVar(&sortDisableSteam, "disable-steam", false, "ignore the Steam installation and workshop")

	sortCmd.Flags().StringVar(&sortSteamDir, "steam-dir", "", "Steam installation directory")
	sortCmd.Flags().StringVar(&sortDRMFreeDir, "drm-free-dir", "", "DRM-free RimWorld installation directory")
	sortCmd.Flags().StringVar(&sortGameConfigDir, "game-config-dir", "", "directory holding ModsConfig.xml")
	sortCmd.Flags().StringVar(&sortWorkshopDir, "workshop-dir", "", "Steam Workshop content directory for RimWorld")
	sortCmd.Flags().StringVar(&sortLocalModsDir, "local-mods-dir", "", "game Mods directory")
}

// applySortFlags layers the command-line overrides on top of the loaded
// configuration. Flags win over the file.
func applySortFlags(cfg *config.Config) {
	if sortKeepUnknown {
		cfg.Behaviour.KeepUnknown = true
	}
	if sortDisableSteam {
		cfg.Behaviour.DisableSteam = true
	}
	if sortOffline {
		cfg.Behaviour.Offline = true
	}
	if sortSkipUpdate {
		cfg.Behaviour.UpdateCheck = false
	}
	if sortSteamDir != "" {
		cfg.Paths.SteamDir = sortSteamDir
	}
	if sortDRMFreeDir != "" {
		cfg.Paths.DRMFreeDir = sortDRMFreeDir
	}
	if sortGameConfigDir != "" {
		cfg.Paths.GameConfigDir = sortGameConfigDir
	}
	if sortWorkshopDir != "" {
		cfg.Paths.WorkshopDir = sortWorkshopDir
	}
	if sortLocalModsDir != "" {
		cfg.Paths.LocalModsDir = sortLocalModsDir
	}
}

// checkOverrideDirs rejects directory overrides that do not exist, before
// any of them is used. A typo here must not silently fall back to defaults.
func checkOverrideDirs() error {
	overrides := []struct {
		flag string
		dir  string
	}{
		{"--steam-dir", sortSteamDir},
		{"--drm-free-dir", sortDRMFreeDir},
		{"--game-config-dir", sortGameConfigDir},
		{"--workshop-dir", sortWorkshopDir},
		{"--local-mods-dir", sortLocalModsDir},
	}
	for _, o := range overrides {
		if o.dir != "" && !dirExists(o.dir) {
			return fmt.Errorf("%s: directory %s does not exist", o.flag, o.dir)
		}
	}
	return nil
}

func runSort(cmd *cobra.Command, args []string) error {
	log := logging.For("app")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySortFlags(cfg)
	if err := checkOverrideDirs(); err != nil {
		return err
	}

	fmt.Printf("rwsort %s\n", version.Version)

	if cfg.Behaviour.UpdateCheck && !cfg.Behaviour.Offline {
		// Informational only; a failed check never blocks the sort.
		if newer, latest, err := update.Available(update.VersionURL, version.Version); err != nil {
			log.Warn().Err(err).Msg("update check failed")
		} else if newer {
			fmt.Printf("A different release is available: %s (you run %s).\n", latest, version.Version)
		}
	}

	if !cfg.GameDetected() {
		return fmt.Errorf("no RimWorld installation found; set --drm-free-dir or the [paths] section of the configuration file")
	}

	db, err := loadScoreDatabase(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Database v%d (%s): %d known mods.\n", db.Version, db.Timestamp, len(db.Categories))
	if top := db.TopContributors(5); len(top) > 0 {
		names := make([]string, len(top))
		for i, c := range top {
			names[i] = fmt.Sprintf("%s (%d)", c.Name, c.Mods)
		}
		fmt.Printf("Top contributors: %s.\n", strings.Join(names, ", "))
	}

	mcPath := cfg.ModsConfigFile()
	if mcPath == "" {
		return fmt.Errorf("could not determine the game configuration directory; set --game-config-dir")
	}
	mc, err := modsconfig.Load(mcPath)
	if err != nil {
		return err
	}

	initialOrder := mc.ActiveMods()
	enabled := mods.EnsureCore(initialOrder)

	// The workshop page fallback needs both Steam and network access.
	var resolver mods.NameResolver
	if cfg.SteamDetected() && !cfg.Behaviour.Offline {
		resolver = workshop.New()
	}

	var workshopRecords map[string]mods.Record
	if wdir := cfg.WorkshopDir(); wdir != "" {
		if !dirExists(wdir) {
			return fmt.Errorf("steam workshop directory %s not found; check the installation or pass --workshop-dir", wdir)
		}
		workshopRecords, err = mods.Load(wdir, db.Lookup, mods.SourceWorkshop, resolver)
		if err != nil {
			return err
		}
	}

	ldir := cfg.LocalModsDir()
	if ldir == "" || !dirExists(ldir) {
		return fmt.Errorf("local mod directory %q not found; check the installation or pass --local-mods-dir", ldir)
	}
	localRecords, err := mods.Load(ldir, db.Lookup, mods.SourceLocal, nil)
	if err != nil {
		return err
	}

	records := mods.Merge(localRecords, workshopRecords)
	_, unknown := mods.Partition(records)

	active, unknownActive := mods.Reconcile(enabled, records)
	sorted := mods.SortActive(active)

	fmt.Printf("%d installed mods, %d enabled (%d known, %d unknown).\n",
		len(records), len(enabled), len(active), len(unknownActive))

	now := time.Now()

	if sortResetToCore {
		fmt.Println("Resetting the load order to Core only.")
	} else if len(unknown) > 0 {
		writeUnknownReport(cfg, mc, unknown, len(active), now)
		if cfg.Behaviour.KeepUnknown {
			fmt.Println("Unknown active mods stay at the end of the load order.")
		} else {
			fmt.Println("Unknown active mods are removed from the load order (they stay installed and listed in the report).")
		}
	} else {
		fmt.Println("No unknown mods detected.")
	}

	var finalOrder []string
	if sortResetToCore {
		finalOrder = []string{mods.CoreModID}
	} else {
		finalOrder = mods.FinalOrder(sorted, unknownActive, cfg.Behaviour.KeepUnknown)
	}

	if sortDryRun {
		printDryRun(initialOrder, finalOrder, records)
		fmt.Println("\nDry run: ModsConfig.xml was not modified.")
		return nil
	}

	prompt := fmt.Sprintf("Write the new load order to %s?", mc.Path())
	if sortResetToCore {
		prompt = fmt.Sprintf("Reset %s to Core only?", mc.Path())
	}
	if !sortYes && !confirm(prompt) {
		fmt.Println("ModsConfig.xml was NOT modified.")
		return nil
	}

	mc.SetActiveMods(finalOrder)
	backup, err := mc.Save(now)
	if err != nil {
		return err
	}
	fmt.Printf("Original saved as %s.\n", backup)
	fmt.Println("New load order written. Enjoy a stable game.")
	return nil
}

// writeUnknownReport writes the unknown-mod report file and, when requested
// and configured, files it on the database issue tracker. Failures here are
// warnings; they never abort the sort.
func writeUnknownReport(cfg *config.Config, mc *modsconfig.File, unknown map[string]mods.Record, knownActive int, now time.Time) {
	log := logging.For("app")

	contributor := "anonymous"
	if cfg.GitHub.User != "" {
		contributor = strings.SplitN(cfg.GitHub.User, "@", 2)[0]
	}
	rep := report.New(unknown, report.Meta{
		Contributor: contributor,
		ModsKnown:   knownActive,
		GameVersion: mc.GameVersion(),
		ToolVersion: version.Version,
		OS:          runtime.GOOS,
		Time:        now.Format(time.RFC1123),
	}, !cfg.Behaviour.DisableSteam)

	path := report.FileName(now)
	if err := rep.Write(path); err != nil {
		log.Warn().Err(err).Msg("could not write the unknown-mod report")
		return
	}
	fmt.Printf("\n%d unknown mods; report written to %s.\n", len(unknown), path)

	if sortSubmitReport && cfg.GitHubConfigured() {
		submitReport(cfg, path)
		return
	}
	if sortSubmitReport {
		log.Warn().Msg("--submit-report needs github user and token in the configuration file")
	}
	fmt.Println("Submit the report on the database issue tracker to get these mods categorized:")
	fmt.Println("  https://github.com/shakeyourbunny/RWMSDB/issues")
}

func submitReport(cfg *config.Config, path string) {
	log := logging.For("app")

	body, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Msg("could not read back the report for submission")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	url, err := issues.New(ctx, cfg.GitHub.Token).CreateReport(ctx, cfg.GitHub.User, string(body))
	if err != nil {
		log.Warn().Err(err).Msg("could not file the report on the issue tracker")
		fmt.Println("Submit the report manually: https://github.com/shakeyourbunny/RWMSDB/issues")
		return
	}
	fmt.Printf("Report filed: %s\n", url)
}

// printDryRun renders the position changes from the current order to the
// proposed one, then the full resulting order.
func printDryRun(initial, final []string, records map[string]mods.Record) {
	pos := make(map[string]int, len(final))
	for i, id := range final {
		pos[id] = i + 1
	}

	fmt.Println("\nProposed changes:")
	for i, id := range initial {
		name := displayName(records, id)
		switch to, ok := pos[id]; {
		case !ok:
			fmt.Printf("  %s leaves the active mods\n", name)
		case to == i+1:
			fmt.Printf("  %s stays at position %d\n", name, to)
		default:
			fmt.Printf("  %s moves from position %d to %d\n", name, i+1, to)
		}
	}

	fmt.Println("\nResulting load order:")
	for i, id := range final {
		fmt.Printf("  %3d. %s (%s)\n", i+1, displayName(records, id), id)
	}
}

// displayName prefers the cleaned mod name over the folder ID.
func displayName(records map[string]mods.Record, id string) string {
	if rec, ok := records[id]; ok && rec.Name != "" {
		return rec.Name
	}
	return id
}
