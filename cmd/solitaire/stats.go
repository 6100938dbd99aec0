package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats <variant>",
	Short: "Show games played, won and best scores",
	Long: `Display the stored record for a variant: saved difficulty and mode,
games played and won, and the best score per difficulty. When the scores
database is available, win aggregates are shown too.

Examples:
  solitaire stats klondike
  solitaire stats freecell --kv redis://localhost:6379`,
	Args: cobra.ExactArgs(1),
	Run:  runStats,
}

func runStats(_ *cobra.Command, args []string) {
	variant := args[0]

	info, ok := registry.Info(variant)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'solitaire list' to see available variants.")
		os.Exit(1)
	}

	a, err := newApp(false, nil)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	rec := stats.Load(a.kv, stats.Key(variant), stats.Record{}, a.logger)

	fmt.Printf("Stats - %s\n", info.Title)
	fmt.Println()
	if rec.Difficulty != "" {
		fmt.Printf("  Difficulty:  %s\n", rec.Difficulty)
	}
	if rec.Mode != "" {
		fmt.Printf("  Mode:        %s\n", rec.Mode)
	}
	fmt.Printf("  Played:      %d\n", rec.GamesPlayed)
	fmt.Printf("  Won:         %d (%.1f%%)\n", rec.GamesWon, rec.WinRate())
	for _, d := range info.Difficulties {
		if best := rec.Best(d); best > 0 {
			fmt.Printf("  Best %-7s %d\n", d+":", best)
		}
	}

	if a.scores == nil {
		return
	}
	ws, err := a.scores.GetWinStats(variant)
	if err != nil || ws.Wins == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  Average win: %.0f\n", ws.AvgScore)
	fmt.Printf("  Fewest moves: %d\n", ws.FewestMoves)
	fmt.Printf("  Fastest:     %s\n", ws.Fastest)
	fmt.Printf("  Last won:    %s\n", ws.LastWon.Format("2006-01-02 15:04"))
}
