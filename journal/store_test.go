package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsetrader/logger"
)

func dayExecs() []Execution {
	return []Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("09:25:00", Buy, "IGL", 10, 101),
		exec("09:40:00", Sell, "SBIN", 5, 200),
		exec("10:00:00", Sell, "IGL", 10, 105),
		exec("10:30:00", Buy, "SBIN", 5, 190),
	}
}

func TestStoreLoadEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir(), testDay)
	require.NoError(t, err)
	defer store.Close()

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, testDay, state.Date)
	assert.Empty(t, state.Positions)
}

func TestStoreSaveLoadIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir, testDay)
	require.NoError(t, err)
	defer store.Close()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process(dayExecs())
	e.State.Positions[0].Strategy = "ORB"

	require.NoError(t, store.Save(e.State))
	first, err := os.ReadFile(filepath.Join(dir, testDay+".json"))
	require.NoError(t, err)

	// load then save with no mutation reproduces the bytes
	state, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(state))

	second, err := os.ReadFile(filepath.Join(dir, testDay+".json"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIdempotentResume(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// first run over the full export
	run1 := NewEngine(testDay, nil, logger.Nop())
	run1.Process(dayExecs())

	store, err := NewStore(dir, testDay)
	require.NoError(t, err)
	require.NoError(t, store.Save(run1.State))
	persisted, err := os.ReadFile(filepath.Join(dir, testDay+".json"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// second run re-derives from scratch over the same export
	run2 := NewEngine(testDay, nil, logger.Nop())
	run2.Process(dayExecs())

	store2, err := NewStore(dir, testDay)
	require.NoError(t, err)
	defer store2.Close()
	require.NoError(t, store2.Save(run2.State))

	again, err := os.ReadFile(filepath.Join(dir, testDay+".json"))
	require.NoError(t, err)
	assert.Equal(t, persisted, again, "re-running over identical input must persist identical state")
}

func TestStoreLockRejectsSecondInvocation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir, testDay)
	require.NoError(t, err)
	defer store.Close()

	_, err = NewStore(dir, testDay)
	assert.Error(t, err)

	// a different date is fine
	other, err := NewStore(dir, "2026-08-29")
	require.NoError(t, err)
	other.Close()
}

func TestStoreSaveLeavesNoPartialState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir, testDay)
	require.NoError(t, err)
	defer store.Close()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process(dayExecs())
	require.NoError(t, store.Save(e.State))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, ent := range entries {
		assert.NotContains(t, ent.Name(), ".tmp")
	}
}

func TestMergeStrategies(t *testing.T) {
	t.Parallel()

	run1 := NewEngine(testDay, nil, logger.Nop())
	run1.Process(dayExecs())
	run1.State.Positions[0].Strategy = "ORB"
	run1.State.Positions[1].Strategy = "TREND"

	run2 := NewEngine(testDay, nil, logger.Nop())
	run2.Process(dayExecs())

	merged := MergeStrategies(run2.State, run1.State)
	assert.Equal(t, 2, merged)
	assert.Equal(t, "ORB", run2.State.Positions[0].Strategy)
	assert.Equal(t, "TREND", run2.State.Positions[1].Strategy)
}

func TestMergeStrategiesIgnoresMismatchedPositions(t *testing.T) {
	t.Parallel()

	prior := NewDayState(testDay)
	prior.Append(&Position{Date: testDay, Entry: "09:00:00", Trade: string(Long),
		Symbol: "OTHER", Quantity: "3", Buy: "50", Strategy: "ORB"})

	fresh := NewEngine(testDay, nil, logger.Nop())
	fresh.Process(dayExecs())

	assert.Equal(t, 0, MergeStrategies(fresh.State, prior))
}
