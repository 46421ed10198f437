package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rwmods/rwsort/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the mod directories and report changes",
	Long: `Watch monitors the workshop, local mod and game config directories and
prints a line whenever something changes, so you know when the load order
is stale. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second,
		"minimum time between reports for the same path")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dirs := []string{cfg.WorkshopDir(), cfg.LocalModsDir(), cfg.GameConfigDir()}
	w, err := watcher.New(dirs, watchDebounce)
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop() //nolint:errcheck

	fmt.Println("Watching for mod changes; press Ctrl-C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev := <-w.Events():
			fmt.Printf("%s %s; run 'rwsort sort' to refresh the load order\n", ev.Op, ev.Path)
		case <-sig:
			fmt.Println("\nStopping.")
			return nil
		}
	}
}
