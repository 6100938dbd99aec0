package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start solitaire in interactive menu mode.

Pick a variant, then its mode and difficulty. Going back from a game
returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  B/Esc        - Previous step
  Tab          - Scoreboard
  C / T / Y    - Cycle card back, table color, card style
  Q            - Quit

Examples:
  solitaire menu
  solitaire menu --kv memory
  solitaire menu --db ./solitaire.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := newApp(true, nil)
	if err != nil {
		fail("%v", err)
	}
	err = menuLoop(a, runtimeConfig())
	a.Close()
	if err != nil {
		fail("%v", err)
	}
}

// menuLoop alternates between the menu, the scoreboard and tables until the
// player quits.
func menuLoop(a *app, cfg core.RuntimeConfig) error {
	for {
		res, err := tui.RunMenu(a.kv, cfg, a.logger)
		if err != nil {
			return err
		}
		cfg = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(a.scores, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		back, err := tui.Run(a.mgr, res.Selection, res.Customization, cfg)
		if err != nil {
			a.logger.Error("table failed", "variant", res.Selection.Variant, "err", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
