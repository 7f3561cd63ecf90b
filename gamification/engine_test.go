// ABOUTME: Tests for reward scoring, level derivation, and persistence
// ABOUTME: Includes a concurrency check that parallel awards are not lost
package gamification

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/phonestore/store"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0))
	assert.Equal(t, 1, LevelFor(499))
	assert.Equal(t, 2, LevelFor(500))
	assert.Equal(t, 3, LevelFor(1000))
	assert.Equal(t, 1, LevelFor(-10))
}

func TestAwardCrossesLevel(t *testing.T) {
	kv := store.NewMemoryStore()
	e := NewEngine(kv, nil)
	e.Load()

	var fired [][2]int
	e.OnLevelUp(func(prev, cur int) { fired = append(fired, [2]int{prev, cur}) })

	res := e.Award(495, "")
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 1, res.State.Level)

	res = e.Award(10, "")
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.PreviousLevel)
	assert.Equal(t, 505, res.State.Points)
	assert.Equal(t, 2, res.State.Level)
	assert.Equal(t, [][2]int{{1, 2}}, fired)

	points, _, err := store.GetInt(kv, store.KeyPoints)
	require.NoError(t, err)
	assert.Equal(t, 505, points)
	level, _, err := store.GetInt(kv, store.KeyLevel)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
}

func TestBadgeIsIdempotent(t *testing.T) {
	kv := store.NewMemoryStore()
	e := NewEngine(kv, nil)

	e.Award(RewardFirstOrder, BadgeFirstOrder)
	res := e.Award(RewardFirstOrder, BadgeFirstOrder)

	assert.Equal(t, []string{BadgeFirstOrder}, res.State.Badges)
	assert.Equal(t, 200, res.State.Points)

	var badges []string
	_, err := store.GetJSON(kv, store.KeyBadges, &badges)
	require.NoError(t, err)
	assert.Equal(t, []string{BadgeFirstOrder}, badges)
}

func TestNonPositiveAwardIsNoop(t *testing.T) {
	kv := store.NewMemoryStore()
	e := NewEngine(kv, nil)
	e.Award(10, "")

	res := e.Award(-5, "Cheater")
	assert.Equal(t, 10, res.State.Points)
	assert.Empty(t, res.State.Badges)

	res = e.Award(0, "")
	assert.Equal(t, 10, res.State.Points)
}

func TestLoadDerivesLevel(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(store.KeyPoints, "1200"))
	require.NoError(t, kv.Set(store.KeyLevel, "9"))
	require.NoError(t, kv.Set(store.KeyBadges, `["First Order","First Order"]`))

	st := NewEngine(kv, nil).Load()
	assert.Equal(t, 1200, st.Points)
	assert.Equal(t, 3, st.Level)
	assert.Equal(t, []string{"First Order"}, st.Badges)
}

func TestLoadIgnoresMalformed(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(store.KeyPoints, "lots"))
	require.NoError(t, kv.Set(store.KeyBadges, "{"))

	st := NewEngine(kv, nil).Load()
	assert.Equal(t, 0, st.Points)
	assert.Equal(t, 1, st.Level)
	assert.Empty(t, st.Badges)
}

func TestStateSurvivesReload(t *testing.T) {
	kv := store.NewMemoryStore()
	e := NewEngine(kv, nil)
	e.Award(RewardCartOrder, "")
	e.Award(RewardViewProduct, BadgeFirstOrder)

	reloaded := NewEngine(kv, nil).Load()
	assert.Equal(t, e.State(), reloaded)
}

func TestConcurrentAwards(t *testing.T) {
	e := NewEngine(store.NewMemoryStore(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Award(RewardAddToCart, "")
		}()
	}
	wg.Wait()

	st := e.State()
	assert.Equal(t, 500, st.Points)
	assert.Equal(t, 2, st.Level)
}

func TestSnapshotIsCopy(t *testing.T) {
	e := NewEngine(store.NewMemoryStore(), nil)
	res := e.Award(1, "A")
	res.State.Badges[0] = "B"
	assert.Equal(t, []string{"A"}, e.State().Badges)
}
