package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsetrader/logger"
)

func archivedState(t *testing.T) *DayState {
	t.Helper()
	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("09:30:00", Buy, "SBIN", 5, 190), // stays open, never archived
		exec("10:00:00", Sell, "IGL", 10, 105),
		exec("10:10:00", Sell, "TATAMOTORS", 20, 400),
		exec("11:00:00", Buy, "TATAMOTORS", 20, 395),
	})
	e.State.Positions[0].Strategy = "ORB"
	e.State.Positions[2].Strategy = "TREND"
	return e.State
}

func TestArchiveAppendAndList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.db")
	arch, err := OpenArchive(path)
	require.NoError(t, err)
	defer arch.Close()

	n, err := arch.Append(archivedState(t))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "only closed positions belong in the archive")

	trades, err := arch.ListByDay(testDay)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, "1", trades[0].PositionID)
	assert.Equal(t, "IGL", trades[0].Symbol)
	assert.Equal(t, "LONG", trades[0].Direction)
	assert.Equal(t, "ORB", trades[0].Strategy)
	assert.Equal(t, 10, trades[0].Quantity)
	assert.InDelta(t, 50.0, trades[0].RealizedPL, 1e-9)

	assert.Equal(t, "3", trades[1].PositionID)
	assert.Equal(t, "TATAMOTORS", trades[1].Symbol)
	assert.Equal(t, "SHORT", trades[1].Direction)
	assert.InDelta(t, 100.0, trades[1].RealizedPL, 1e-9)
}

func TestArchiveAppendIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.db")
	arch, err := OpenArchive(path)
	require.NoError(t, err)
	defer arch.Close()

	state := archivedState(t)
	n, err := arch.Append(state)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// re-running the day adds nothing
	n, err = arch.Append(state)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	trades, err := arch.ListByDay(testDay)
	require.NoError(t, err)
	assert.Len(t, trades, 2)
}

func TestArchiveListByDayEmpty(t *testing.T) {
	t.Parallel()

	arch, err := OpenArchive(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer arch.Close()

	trades, err := arch.ListByDay("2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, trades)
}
