// solitaire is a terminal card table for Klondike, Spider and FreeCell.
//
// Usage:
//
//	solitaire list                 - List available variants
//	solitaire play <variant>       - Play a variant
//	solitaire menu                 - Pick a variant interactively
//	solitaire serve                - Start SSH server for remote play
//	solitaire scores <variant>     - Show the best wins for a variant
//	solitaire stats <variant>      - Show games played, won and best scores
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible deals
//	--db <path>       - Set database path (default: ~/.solitaire/solitaire.db)
//	--kv <backend>    - Settings backend: sqlite, memory, redis or redis://host:port
//	--config <path>   - Path to solitaire.yaml
//	--log <path>      - Write logs to a file while playing
//
// Variables from a .env file in the working directory are loaded first;
// SOLITAIRE_DB, SOLITAIRE_KV, SOLITAIRE_CONFIG and SOLITAIRE_SEED supply
// defaults for the matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagKV      string
	flagConfig  string
	flagLogFile string
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "solitaire",
	Short: "TUI Solitaire - Klondike, Spider and FreeCell in your terminal",
	Long: `TUI Solitaire is a terminal card table for the classic patience games.

Available commands:
  list     - Show all variants with their modes and difficulties
  play     - Play a specific variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View the best wins
  stats    - View games played and won

Examples:
  solitaire list
  solitaire play klondike --mode draw-3
  solitaire play spider --mode 2-suits --difficulty easy
  solitaire menu
  solitaire serve --ssh :2222
  solitaire scores freecell`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagKV, "kv", "", "Settings backend: sqlite, memory, redis or redis://host:port")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to solitaire.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Log file for interactive commands")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
}

// applyEnv fills flags the user did not set from SOLITAIRE_* variables.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env := map[string]string{
		"db":     "SOLITAIRE_DB",
		"kv":     "SOLITAIRE_KV",
		"config": "SOLITAIRE_CONFIG",
		"seed":   "SOLITAIRE_SEED",
	}
	for name, key := range env {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if v, ok := os.LookupEnv(key); ok && v != "" {
			if err := f.Value.Set(v); err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
		}
	}
	return nil
}
