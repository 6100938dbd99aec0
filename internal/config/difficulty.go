package config

import "strings"

// DifficultyPreset is the variant-neutral difficulty accepted by the CLI.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// aliases maps each preset to the labels variants use for it.
var aliases = map[DifficultyPreset][]string{
	DifficultyEasy:   {"easy", "beginner"},
	DifficultyMedium: {"medium", "normal"},
	DifficultyHard:   {"hard", "expert"},
}

// ParsePreset normalizes a CLI difficulty, accepting variant labels too.
func ParsePreset(s string) (DifficultyPreset, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for preset, labels := range aliases {
		for _, l := range labels {
			if l == s {
				return preset, true
			}
		}
	}
	return "", false
}

// ResolveDifficulty maps a preset onto the label a variant understands,
// e.g. easy -> beginner for Spider. It returns false if the variant has no
// matching label.
func ResolveDifficulty(preset DifficultyPreset, labels []string) (string, bool) {
	for _, want := range aliases[preset] {
		for _, l := range labels {
			if l == want {
				return l, true
			}
		}
	}
	return "", false
}
