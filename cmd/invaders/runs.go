package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Browse runs saved with 'play --record', newest first.

In the browser, Enter replays the selected run and X deletes it.
With --plain the runs are printed as a table instead.

Examples:
  invaders runs
  invaders runs --plain --limit 20`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database", err)
	}
	defer store.Close()

	if flagPlain {
		if err := printRuns(store); err != nil {
			fail("listing runs", err)
		}
		return
	}

	width, height := terminalSize()
	id, err := tui.RunRunsBrowser(store, invaders.ID, width, height)
	if err != nil {
		fail("browsing runs", err)
	}
	if id == 0 {
		return
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("opening log", err)
	}
	defer closeLog()
	if err := playRun(logger, store, id); err != nil {
		fail("replaying run", err)
	}
}

func printRuns(store *storage.Store) error {
	runs, err := store.ListRuns(invaders.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recorded runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'invaders play --record' to keep one.")
		return nil
	}

	fmt.Println(runsTable(runs))

	stats, err := store.GetRunStats(invaders.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Runs: %d  Best score: %d  Best level: %d  Average: %.0f\n",
		stats.Runs, stats.BestScore, stats.BestLevel, stats.AvgScore)
	return nil
}
