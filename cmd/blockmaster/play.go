package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockmaster/internal/config"
	"github.com/vovakirdan/blockmaster/internal/core"
	"github.com/vovakirdan/blockmaster/internal/games/blocks"
	"github.com/vovakirdan/blockmaster/internal/platform/tui"
	"github.com/vovakirdan/blockmaster/internal/registry"
	"github.com/vovakirdan/blockmaster/internal/storage"
)

var (
	flagConfig string
	flagRules  string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Blockmaster",
	Long: `Start a game in the given mode (default: blocks).

Controls:
  Arrows/WASD  - Move the piece over the board
  Tab/1-3      - Pick a piece from the tray
  Enter/Space  - Place the piece
  P/Esc        - Pause
  R            - Restart
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Rule presets:
  modern   - Combo scoring, every offered batch has a legal move
  classic  - No combo, batches are fully random

Examples:
  blockmaster play
  blockmaster play blocks_classic
  blockmaster play --rules classic
  blockmaster play --seed 42
  blockmaster play --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "blocks"
	if len(args) > 0 {
		gameID = args[0]
	}

	preset, err := config.ParsePreset(flagRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset == config.PresetClassic && gameID == "blocks" {
		gameID = "blocks_classic"
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockmaster list' to see available modes.")
		os.Exit(1)
	}

	blocks.SetConfigPath(flagConfig)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	runErr := tui.Run(game, store, cfg)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
