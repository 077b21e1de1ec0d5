// blockmaster is a 9x9 block-placement puzzle for the terminal.
//
// Usage:
//
//	blockmaster list              - List available modes
//	blockmaster play [mode]       - Play a mode (default: blocks)
//	blockmaster menu              - Start menu to pick modes interactively
//	blockmaster serve             - Start SSH server for remote play
//	blockmaster scores [mode]     - Show high scores for a mode
//	blockmaster shapes            - Print the shape catalog
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.blockmaster/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log destination (default: ~/.blockmaster/blockmaster.log)
//
// BLOCKMASTER_DB and BLOCKMASTER_CONFIG, from the environment or a .env
// file in the working directory, override the defaults of --db and --config.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/blockmaster/internal/games/blocks"
)

const (
	envDBPath = "BLOCKMASTER_DB"
	envConfig = "BLOCKMASTER_CONFIG"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logFile is closed on exit.
var logFile *os.File

func main() {
	// A missing .env file is fine; existing variables are never overridden.
	_ = godotenv.Load()

	initFlags()

	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockmaster",
	Short: "Blockmaster - a block-placement puzzle in your terminal",
	Long: `Blockmaster is a 9x9 block-placement puzzle.

Each round offers three pieces. Place all of them to get the next three.
Fill a row or a column to clear it; clearing on consecutive turns builds a
combo that multiplies line points. The game ends when no offered piece fits.

Available commands:
  list     - Show the available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  shapes   - Print the shape catalog

Examples:
  blockmaster play
  blockmaster play --rules classic
  blockmaster menu
  blockmaster serve --ssh :2222
  blockmaster scores blocks`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging(flagLogLevel, flagLogFile)
	},
	SilenceUsage: true,
}

func initFlags() {
	defaultDB := envOr(envDBPath, "~/.blockmaster/scores.db")

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores database (env "+envDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.blockmaster/blockmaster.log", "Log file (\"-\" for stderr)")

	playCmd.Flags().StringVar(&flagConfig, "config", envOr(envConfig, ""), "Path to custom config YAML (env "+envConfig+")")
	playCmd.Flags().StringVar(&flagRules, "rules", "", "Rule preset: modern or classic")
	menuCmd.Flags().StringVar(&flagConfig, "config", envOr(envConfig, ""), "Path to custom config YAML (env "+envConfig+")")
	shapesCmd.Flags().StringVar(&flagConfig, "config", envOr(envConfig, ""), "Path to custom config YAML (env "+envConfig+")")

	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shapesCmd)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// setupLogging points the default logger at a file, since the TUI owns the terminal.
func setupLogging(level, path string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetReportTimestamp(true)

	if path == "-" {
		log.SetOutput(os.Stderr)
		return nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
