package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a match",
	Long: `Start a match right away.

Controls:
  Arrows/WASD  - Move (turns the tank)
  Space        - Fire (5s reload)
  P/Esc        - Pause menu
  Enter        - Confirm / leave after the match
  R            - Restart after the match
  Q/Ctrl+C     - Quit

Difficulty options:
  fixed  - Default: enemy fires every 5s, no progression
  easy   - Slow enemy fire, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Fast enemy fire, starts at 70%

Edits to the --config file apply from the next match.

Examples:
  tanks play
  tanks play --difficulty hard
  tanks play --seed 42
  tanks play --config ./my-tanks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: fixed (default), easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) {
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
	setup.ConfigPath = flagConfig
	setup.Difficulty = flagDifficulty

	game, err := setup.NewGame(gameID)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	runErr := tui.Run(ctx, game, setup, runtimeConfig())
	stop()
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
