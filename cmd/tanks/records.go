package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var (
	flagBrowse bool
	flagClear  bool
	flagLimit  int
)

var recordsCmd = &cobra.Command{
	Use:   "records [game]",
	Short: "Show the best time and recent matches",
	Long: `Display the best time, match totals and the most recent matches.

Examples:
  tanks records
  tanks records --limit 25
  tanks records --browse
  tanks records --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive records board")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the best time and match history")
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent matches to show")
}

func runRecords(_ *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available games.")
		os.Exit(1)
	}

	setup, cleanup, err := openSetup(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if flagBrowse {
		cfg := runtimeConfig()
		if err := tui.RunScoreboard(setup, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagClear {
		clearRecords(setup, gameID)
		return
	}

	printRecords(setup, gameID)
}

func clearRecords(setup tui.Setup, gameID string) {
	if setup.RecordFile != "" {
		if err := os.Remove(setup.RecordFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error clearing best time: %v\n", err)
		}
	}
	if setup.Store != nil {
		if err := setup.Store.ClearBestTime(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing best time: %v\n", err)
		}
		if err := setup.Store.ClearMatches(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing matches: %v\n", err)
		}
	}
	fmt.Println("Records cleared.")
}

func printRecords(setup tui.Setup, gameID string) {
	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	fmt.Printf("Records - %s\n", title)
	fmt.Println()
	fmt.Printf("Best time: %s\n", core.DisplayBestTime(setup.BestTime(gameID)))

	if setup.Store == nil {
		return
	}

	stats, err := setup.Store.GetGameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if stats.Matches == 0 {
		fmt.Println()
		fmt.Println("No matches recorded yet.")
		fmt.Printf("Play 'tanks play %s' to set the first record!\n", gameID)
		return
	}

	fastest := "--:--"
	if stats.Victories > 0 {
		fastest = core.FormatBestTime(stats.FastestWin)
	}
	fmt.Printf("Matches: %d  Victories: %d  Defeats: %d  Fastest win: %s\n",
		stats.Matches, stats.Victories, stats.Defeats, fastest)
	fmt.Printf("Time played: %s\n", stats.TotalPlaying.Round(time.Second))

	matches, err := setup.Store.RecentMatches(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %s\n", "#", "Result", "Time", "Walls", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %s\n", "-", "------", "----", "-----", "----")
	for i, m := range matches {
		result := "Defeat"
		if m.Outcome == core.OutcomeVictory {
			result = "Victory"
		}
		elapsed := core.FormatBestTime(m.Elapsed)
		if m.NewBest {
			elapsed += "*"
		}
		fmt.Printf("  %-4d  %-8s  %-6s  %-5d  %s\n",
			i+1, result, elapsed, m.WallsDestroyed, m.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
