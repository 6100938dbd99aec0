// Package credits tracks the per-game allowance of hints, undos and magic
// moves. A spent-out counter asks for an ad; watching one grants a credit.
package credits

import (
	"errors"

	"github.com/vovakirdan/tui-solitaire/internal/config"
)

// DefaultPerGame is the allowance when no configuration is given.
const DefaultPerGame = 3

// ErrNoCredits is returned by Spend when the counter is empty.
var ErrNoCredits = errors.New("credits: none left")

// Counter is one kind of credit.
type Counter struct {
	perGame   int
	remaining int
	adPending bool
}

// NewCounter creates a counter holding perGame credits.
func NewCounter(perGame int) *Counter {
	if perGame < 0 {
		perGame = 0
	}
	return &Counter{perGame: perGame, remaining: perGame}
}

// Use spends one credit. With none left it returns false and flags an ad prompt.
func (c *Counter) Use() bool {
	if c.remaining > 0 {
		c.remaining--
		return true
	}
	c.adPending = true
	return false
}

// Spend runs fn if a credit is available and charges it only when fn
// succeeds. An empty counter flags the ad prompt and returns ErrNoCredits.
func (c *Counter) Spend(fn func() error) error {
	if !c.Available() {
		c.Use()
		return ErrNoCredits
	}
	if err := fn(); err != nil {
		return err
	}
	c.Use()
	return nil
}

// Grant adds one credit after an ad and clears the prompt.
func (c *Counter) Grant() {
	c.remaining++
	c.adPending = false
}

// Dismiss clears the ad prompt without granting anything.
func (c *Counter) Dismiss() { c.adPending = false }

// Reset restores the per-game allowance.
func (c *Counter) Reset() {
	c.remaining = c.perGame
	c.adPending = false
}

func (c *Counter) Remaining() int  { return c.remaining }
func (c *Counter) Available() bool { return c.remaining > 0 }
func (c *Counter) AdPending() bool { return c.adPending }

// Kind names a counter in a Wallet.
type Kind int

const (
	Hint Kind = iota
	Undo
	Magic
)

func (k Kind) String() string {
	switch k {
	case Hint:
		return "hint"
	case Undo:
		return "undo"
	case Magic:
		return "magic"
	default:
		return "unknown"
	}
}

// Wallet holds every counter for one game.
type Wallet struct {
	Hints      *Counter
	Undos      *Counter
	MagicMoves *Counter
}

// NewWallet creates a wallet from the credits configuration.
func NewWallet(cfg config.CreditsConfig) *Wallet {
	return &Wallet{
		Hints:      NewCounter(cfg.Hints),
		Undos:      NewCounter(cfg.Undos),
		MagicMoves: NewCounter(cfg.MagicMoves),
	}
}

// DefaultWallet creates a wallet with DefaultPerGame of each credit.
func DefaultWallet() *Wallet {
	return NewWallet(config.CreditsConfig{
		Hints:      DefaultPerGame,
		Undos:      DefaultPerGame,
		MagicMoves: DefaultPerGame,
	})
}

// Counter returns the counter for k, or nil.
func (w *Wallet) Counter(k Kind) *Counter {
	switch k {
	case Hint:
		return w.Hints
	case Undo:
		return w.Undos
	case Magic:
		return w.MagicMoves
	default:
		return nil
	}
}

// Pending returns the first counter waiting on an ad.
func (w *Wallet) Pending() (Kind, bool) {
	for _, k := range []Kind{Hint, Undo, Magic} {
		if w.Counter(k).AdPending() {
			return k, true
		}
	}
	return 0, false
}

// Reset restores every counter. Called on each new game.
func (w *Wallet) Reset() {
	w.Hints.Reset()
	w.Undos.Reset()
	w.MagicMoves.Reset()
}
