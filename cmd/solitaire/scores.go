package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show the best wins for a variant",
	Long: `Display the top 10 winning scores for the specified variant, with the
best score per difficulty.

Examples:
  solitaire scores klondike
  solitaire scores spider --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded win for the variant")
}

func runScores(_ *cobra.Command, args []string) {
	variant := args[0]

	info, ok := registry.Info(variant)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'solitaire list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(variant); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return
	}

	scores, err := store.TopScores(variant, 10)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'solitaire play %s' to set the first high score!\n", variant)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-10s  %-8s  %-5s  %-8s  %s\n", "Rank", "Score", "Difficulty", "Mode", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-10s  %-8s  %-5s  %-8s  %s\n", "----", "-----", "----------", "----", "-----", "----", "----")

	for i, e := range scores {
		mode := e.Mode
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("  %-4d  %-7d  %-10s  %-8s  %-5d  %-8s  %s\n",
			i+1, e.Score, e.Difficulty, mode, e.Moves, e.Elapsed.String(), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	for _, d := range info.Difficulties {
		if best, err := store.HighScore(variant, d); err == nil && best > 0 {
			fmt.Printf("Best (%s): %d\n", d, best)
		}
	}
}
