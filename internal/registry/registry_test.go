package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/vovakirdan/tui-solitaire/internal/games/freecell"
	_ "github.com/vovakirdan/tui-solitaire/internal/games/klondike"
	_ "github.com/vovakirdan/tui-solitaire/internal/games/spider"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

func TestListIsSorted(t *testing.T) {
	list := registry.List()
	require.Len(t, list, 3)

	ids := make([]string, len(list))
	for i, info := range list {
		ids[i] = info.ID
	}
	assert.Equal(t, []string{"freecell", "klondike", "spider"}, ids)
}

func TestInfo(t *testing.T) {
	info, ok := registry.Info("spider")
	require.True(t, ok)
	assert.Equal(t, "Spider", info.Title)
	assert.Equal(t, []string{"1-suit", "2-suits", "4-suits"}, info.Modes)
	assert.Equal(t, []string{"beginner", "medium", "expert"}, info.Difficulties)

	info, ok = registry.Info("freecell")
	require.True(t, ok)
	assert.Empty(t, info.Modes)

	_, ok = registry.Info("golf")
	assert.False(t, ok)
}

func TestCreate(t *testing.T) {
	r, err := registry.Create("klondike")
	require.NoError(t, err)
	assert.Equal(t, "klondike", r.ID())

	other, err := registry.Create("klondike")
	require.NoError(t, err)
	assert.NotSame(t, r, other)

	_, err = registry.Create("golf")
	assert.Error(t, err)
	assert.False(t, registry.Exists("golf"))
	assert.True(t, registry.Exists("freecell"))
}

func TestDuplicateRegisterPanics(t *testing.T) {
	assert.Panics(t, func() {
		registry.Register("klondike", func() solitaire.Rules {
			r, _ := registry.Create("klondike")
			return r
		})
	})
}
