package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered solitaire variant with its modes and difficulties.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-22s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Modes", "Difficulties")
	fmt.Printf("  %-*s  %-*s  %-22s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "------------")

	for _, v := range variants {
		modes := strings.Join(v.Modes, ", ")
		if modes == "" {
			modes = "-"
		}
		fmt.Printf("  %-*s  %-*s  %-22s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, modes, strings.Join(v.Difficulties, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'solitaire play <id>' to play a variant.")
}
