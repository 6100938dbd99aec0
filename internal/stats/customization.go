package stats

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// CustomizationKey is the storage key shared by all variants.
const CustomizationKey = "game-customization"

// Customization holds the player's cosmetic choices.
type Customization struct {
	CardBack  string `json:"cardBack"`
	Table     string `json:"table"`
	CardStyle string `json:"cardStyle"`
}

// Card back options.
const (
	BackClassicRed  = "classic-red"
	BackClassicBlue = "classic-blue"
	BackMidnight    = "midnight"
)

// Table options.
const (
	TableEmeraldFelt = "emerald-felt"
	TableNavyFelt    = "navy-felt"
	TableWalnut      = "walnut"
)

// Card style options.
const (
	StyleClassic  = "classic"
	StyleColorful = "colorful"
)

// Options lists every choice, in menu order.
var (
	CardBacks  = []string{BackClassicRed, BackClassicBlue, BackMidnight}
	Tables     = []string{TableEmeraldFelt, TableNavyFelt, TableWalnut}
	CardStyles = []string{StyleClassic, StyleColorful}
)

// Cycle returns the option after cur, wrapping around. An unknown cur yields the first option.
func Cycle(options []string, cur string) string {
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// DefaultCustomization returns the initial look.
func DefaultCustomization() Customization {
	return Customization{
		CardBack:  BackClassicRed,
		Table:     TableEmeraldFelt,
		CardStyle: StyleClassic,
	}
}

// LoadCustomization reads the stored customization, falling back to defaults
// field by field.
func LoadCustomization(kv KV, logger *log.Logger) Customization {
	if logger == nil {
		logger = log.Default()
	}
	def := DefaultCustomization()
	if kv == nil {
		return def
	}

	blob, err := kv.Load(CustomizationKey)
	if err != nil {
		logger.Warn("cannot load customization, using defaults", "err", err)
		return def
	}
	if blob == nil {
		return def
	}

	var c Customization
	if err := json.Unmarshal(blob, &c); err != nil {
		logger.Warn("malformed customization blob, using defaults", "err", err)
		return def
	}
	if c.CardBack == "" {
		c.CardBack = def.CardBack
	}
	if c.Table == "" {
		c.Table = def.Table
	}
	if c.CardStyle == "" {
		c.CardStyle = def.CardStyle
	}
	return c
}

// SaveCustomization stores c under CustomizationKey.
func SaveCustomization(kv KV, c Customization) error {
	if kv == nil {
		return nil
	}
	blob, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("stats: cannot encode customization: %w", err)
	}
	if err := kv.Save(CustomizationKey, blob); err != nil {
		return fmt.Errorf("stats: cannot save customization: %w", err)
	}
	return nil
}
