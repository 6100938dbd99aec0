package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/platform/tui"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

var (
	flagDifficulty string
	flagMode       string
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Deal a new game of the specified variant.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Pick up or drop cards, draw from the stock
  D            - Draw (Klondike) or deal a row (Spider)
  U / R        - Undo / redo
  ?            - Hint
  M            - Magic move
  F            - Send every playable card to the foundations
  N            - New game
  B            - Back to the menu
  Q/Ctrl+C     - Quit

Difficulty options (mapped onto each variant's labels):
  easy    - Klondike/FreeCell easy, Spider beginner
  medium  - medium on every variant
  hard    - Klondike/FreeCell hard, Spider expert

Examples:
  solitaire play klondike
  solitaire play klondike --mode draw-3 --difficulty hard
  solitaire play spider --mode 1-suit --difficulty easy
  solitaire play freecell --seed 1941`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard (or the variant's own label)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Variant mode, e.g. draw-3 or 2-suits")
}

// resolveSelection validates --difficulty and --mode against the variant.
func resolveSelection(variant string) (tui.Selection, error) {
	info, ok := registry.Info(variant)
	if !ok {
		return tui.Selection{}, fmt.Errorf("unknown variant %q", variant)
	}
	sel := tui.Selection{Variant: variant}

	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return sel, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		label, ok := config.ResolveDifficulty(preset, info.Difficulties)
		if !ok {
			return sel, fmt.Errorf("%s has no %s difficulty", info.Title, preset)
		}
		sel.Difficulty = label
	}

	if flagMode != "" {
		if !slices.Contains(info.Modes, flagMode) {
			return sel, fmt.Errorf("%s has no mode %q", info.Title, flagMode)
		}
		sel.Mode = flagMode
	}
	return sel, nil
}

func runPlay(_ *cobra.Command, args []string) {
	variant := args[0]

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'solitaire list' to see available variants.")
		os.Exit(1)
	}

	sel, err := resolveSelection(variant)
	if err != nil {
		fail("%v", err)
	}

	a, err := newApp(true, nil)
	if err != nil {
		fail("%v", err)
	}

	cfg := runtimeConfig()
	look := stats.LoadCustomization(a.kv, a.logger)
	back, runErr := tui.Run(a.mgr, sel, look, cfg)
	if runErr == nil && back {
		runErr = menuLoop(a, cfg)
	}

	a.Close()
	if runErr != nil {
		fail("%v", runErr)
	}
}
