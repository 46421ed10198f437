package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/rwmods/rwsort/internal/config"
	"github.com/rwmods/rwsort/internal/logging"
	"github.com/rwmods/rwsort/internal/scoredb"
	"github.com/rwmods/rwsort/internal/store"
)

// loadConfig reads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// getCachePath returns the database cache path, using the flag value or the
// default under the user's home directory.
func getCachePath() (string, error) {
	if cachePath != "" {
		return cachePath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	rwsortDir := filepath.Join(home, ".rwsort")
	if err := os.MkdirAll(rwsortDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create rwsort directory: %w", err)
	}

	return filepath.Join(rwsortDir, "cache.db"), nil
}

// loadScoreDatabase returns the scoring database for this run: freshly
// fetched (and cached) when online, the last cached copy when offline.
func loadScoreDatabase(cfg *config.Config) (*scoredb.Database, error) {
	path, err := getCachePath()
	if err != nil {
		return nil, err
	}
	st, err := store.New(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	if err := st.CreateSchema(); err != nil {
		return nil, err
	}

	if cfg.Behaviour.Offline {
		db, err := st.LoadDatabase()
		if errors.Is(err, store.ErrEmptyCache) {
			return nil, fmt.Errorf("offline mode requested but no cached database exists; run once without --offline first")
		}
		if err != nil {
			return nil, err
		}
		if at, err := st.CachedAt(); err == nil && !at.IsZero() {
			fmt.Printf("Using cached database from %s.\n", at.Local().Format("2006-01-02 15:04"))
		}
		return db, nil
	}

	db, err := scoredb.Fetch(scoredb.CategoriesURL, scoredb.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.SaveDatabase(db); err != nil {
		// The sort can proceed; only the next --offline run suffers.
		log := logging.For("app")
		log.Warn().Err(err).Msg("could not refresh the local database cache")
	}
	return db, nil
}

// confirm asks a y/n question on the terminal. A non-interactive stdin
// counts as a decline so scripts cannot overwrite files by accident.
func confirm(prompt string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Println("stdin is not a terminal; pass --yes to write without confirmation.")
		return false
	}
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s (y/n): ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

// dirExists reports whether path names an existing directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
