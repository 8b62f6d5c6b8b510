// tanks is a terminal tank battle: drive the green tank, blast through brick
// walls and destroy the red enemy tank as fast as you can.
//
// Usage:
//
//	tanks list              - List available games
//	tanks play [game]       - Play a match (default: tanks)
//	tanks menu              - Start menu with difficulty selection and records
//	tanks serve             - Start SSH server for remote play
//	tanks records [game]    - Show best time and recent matches
//
// Global flags:
//
//	--tick <duration>       - Simulation frame length (default: 30ms)
//	--seed <value>          - Set RNG seed for reproducible maps and enemy moves
//	--db <path>             - Set database path (default: ~/.arcade/tanks.db)
//	--record-file <path>    - Keep the best time in a plain text file instead
//	--log <path>            - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	// Global flags
	flagTick       time.Duration
	flagSeed       int64
	flagDBPath     string
	flagRecordFile string
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tank Battle - a top-down tank duel in your terminal",
	Long: `Tank Battle is a terminal tank duel. You start in the top-left
corner, the enemy in the bottom-right. Brick walls break, steel walls
don't. Hit the enemy before it hits you; the fastest victory is kept as
your best time.

Available commands:
  list     - Show all available games
  play     - Play a match directly
  menu     - Interactive menu with difficulty and records
  serve    - Start SSH server for remote play
  records  - View best time and match history

Examples:
  tanks play
  tanks play --difficulty hard
  tanks menu --config ./tanks.yaml
  tanks serve --ssh :2222
  tanks records`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", core.DefaultTick, "Simulation frame length")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/tanks.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagRecordFile, "record-file", "", "Keep the best time in this text file (e.g. "+storage.DefaultRecordFile+")")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
}

// newLogger builds the logger for terminal commands. Without --log the
// output is discarded so it cannot tear the alternate screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	if out == nil {
		out = io.Discard
	}
	closeFn := func() {}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tanks",
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the first frame from the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Tick = flagTick
	cfg.Seed = flagSeed
	return cfg
}

// openSetup opens the database and builds the shared session setup. The
// returned cleanup closes everything it opened.
func openSetup(fallback io.Writer) (tui.Setup, func(), error) {
	logger, closeLog, err := newLogger(fallback)
	if err != nil {
		return tui.Setup{}, nil, err
	}

	setup := tui.Setup{
		RecordFile: flagRecordFile,
		Logger:     logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		logger.Warn("running without database", "err", err)
	} else {
		setup.Store = store
	}

	cleanup := func() {
		if setup.Store != nil {
			setup.Store.Close()
		}
		closeLog()
	}
	return setup, cleanup, nil
}

// defaultGame is played when no game id is given.
const defaultGame = tanks.GameID
