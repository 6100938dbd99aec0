package stats

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{}

func (brokenKV) Load(string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (brokenKV) Save(string, []byte) error   { return errors.New("disk on fire") }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestUpdateWinTracksBestStrictly(t *testing.T) {
	var s Stats
	s.Update(true, 500, "easy")
	s.Update(true, 400, "easy")
	s.Update(true, 500, "easy")
	s.Update(true, 900, "hard")

	assert.Equal(t, 4, s.GamesPlayed)
	assert.Equal(t, 4, s.GamesWon)
	assert.Equal(t, 500, s.Best("easy"))
	assert.Equal(t, 900, s.Best("hard"))
	assert.Equal(t, 0, s.Best("medium"))
}

func TestUpdateLossCountsPlayedOnly(t *testing.T) {
	s := Stats{BestScores: map[string]int{"easy": 10}}
	s.Update(false, 9999, "easy")

	assert.Equal(t, 1, s.GamesPlayed)
	assert.Equal(t, 0, s.GamesWon)
	assert.Equal(t, 10, s.Best("easy"))
}

func TestWinRate(t *testing.T) {
	assert.Zero(t, Stats{}.WinRate())
	assert.InDelta(t, 50.0, Stats{GamesPlayed: 4, GamesWon: 2}.WinRate(), 0.001)
}

func TestCloneIsDeep(t *testing.T) {
	s := Stats{BestScores: map[string]int{"easy": 1}}
	c := s.Clone()
	c.BestScores["easy"] = 2
	assert.Equal(t, 1, s.BestScores["easy"])
}

func TestLoadSaveRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	rec := Record{
		Difficulty: "hard",
		Mode:       "draw-3",
		Stats:      Stats{BestScores: map[string]int{"hard": 1200}, GamesPlayed: 3, GamesWon: 1},
	}
	require.NoError(t, Save(kv, Key("klondike"), rec))

	blob, err := kv.Load("klondike-stats")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"difficulty":"hard","mode":"draw-3","bestScores":{"hard":1200},"gamesPlayed":3,"gamesWon":1}`,
		string(blob))

	got := Load(kv, Key("klondike"), Record{Difficulty: "easy"}, quietLogger())
	assert.Equal(t, rec, got)
}

func TestLoadFallbacks(t *testing.T) {
	def := Record{Difficulty: "medium", Mode: "1-suit", Stats: Stats{BestScores: map[string]int{}}}

	t.Run("missing key", func(t *testing.T) {
		got := Load(NewMemoryKV(), "spider-stats", def, quietLogger())
		assert.Equal(t, def, got)
	})

	t.Run("malformed blob", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Save("spider-stats", []byte("{not json")))
		got := Load(kv, "spider-stats", def, quietLogger())
		assert.Equal(t, def, got)
	})

	t.Run("backend error", func(t *testing.T) {
		got := Load(brokenKV{}, "spider-stats", def, quietLogger())
		assert.Equal(t, def, got)
	})

	t.Run("partial blob keeps defaults for settings", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Save("spider-stats", []byte(`{"gamesPlayed":7}`)))
		got := Load(kv, "spider-stats", def, quietLogger())
		assert.Equal(t, "medium", got.Difficulty)
		assert.Equal(t, "1-suit", got.Mode)
		assert.Equal(t, 7, got.GamesPlayed)
		assert.NotNil(t, got.BestScores)
	})

	t.Run("nil kv", func(t *testing.T) {
		assert.Equal(t, def, Load(nil, "spider-stats", def, quietLogger()))
	})
}

func TestSaveReportsBackendError(t *testing.T) {
	err := Save(brokenKV{}, "freecell-stats", Record{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "freecell-stats")
}

func TestCustomization(t *testing.T) {
	kv := NewMemoryKV()
	assert.Equal(t, DefaultCustomization(), LoadCustomization(kv, quietLogger()))

	c := Customization{CardBack: BackMidnight, Table: TableWalnut, CardStyle: StyleColorful}
	require.NoError(t, SaveCustomization(kv, c))
	assert.Equal(t, c, LoadCustomization(kv, quietLogger()))

	require.NoError(t, kv.Save(CustomizationKey, []byte(`{"table":"navy-felt"}`)))
	got := LoadCustomization(kv, quietLogger())
	assert.Equal(t, TableNavyFelt, got.Table)
	assert.Equal(t, BackClassicRed, got.CardBack)
	assert.Equal(t, StyleClassic, got.CardStyle)

	require.NoError(t, kv.Save(CustomizationKey, []byte(`[]`)))
	assert.Equal(t, DefaultCustomization(), LoadCustomization(kv, quietLogger()))
}

func TestMemoryKVCopies(t *testing.T) {
	kv := NewMemoryKV()
	blob := []byte("abc")
	require.NoError(t, kv.Save("k", blob))
	blob[0] = 'x'

	got, err := kv.Load("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestCycle(t *testing.T) {
	assert.Equal(t, BackClassicBlue, Cycle(CardBacks, BackClassicRed))
	assert.Equal(t, BackClassicRed, Cycle(CardBacks, BackMidnight))
	assert.Equal(t, TableEmeraldFelt, Cycle(Tables, "plywood"))
	assert.Equal(t, StyleClassic, Cycle(CardStyles, StyleColorful))
}

func TestApplyMergesConcurrentWriters(t *testing.T) {
	kv := NewLockedKV(NewMemoryKV())
	def := Record{Difficulty: "medium"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(won bool) {
			defer wg.Done()
			_, err := Apply(kv, "klondike-stats", def, quietLogger(), func(r *Record) { r.Update(won, 100, "easy") })
			assert.NoError(t, err)
		}(i%2 == 0)
	}
	wg.Wait()

	rec := Load(kv, "klondike-stats", def, quietLogger())
	assert.Equal(t, 20, rec.GamesPlayed)
	assert.Equal(t, 10, rec.GamesWon)
	assert.Equal(t, 100, rec.Best("easy"))
	assert.Equal(t, "medium", rec.Difficulty)
}

func TestApplyKeepsStoredFields(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, Save(kv, "spider-stats", Record{Difficulty: "expert", Mode: "2-suits", Stats: Stats{GamesPlayed: 3}}))

	rec, err := Apply(kv, "spider-stats", Record{}, quietLogger(), func(r *Record) { r.Mode = "4-suits" })
	require.NoError(t, err)
	assert.Equal(t, "expert", rec.Difficulty)
	assert.Equal(t, "4-suits", rec.Mode)
	assert.Equal(t, 3, rec.GamesPlayed)
}

func TestSaveCustomizationWithoutKV(t *testing.T) {
	assert.NoError(t, SaveCustomization(nil, DefaultCustomization()))
	assert.Equal(t, DefaultCustomization(), LoadCustomization(nil, quietLogger()))
}
