package journal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsetrader/logger"
	"nsetrader/prompt"
)

func testStrategies() Strategies {
	return Strategies{
		Names:   []string{"ORB", "PULLBACK", "TREND"},
		Codes:   []string{"O", "P", "T"},
		Default: "MISC",
	}
}

func TestTagAssignsByCode(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("10:00:00", Sell, "IGL", 10, 105),
	})

	var out bytes.Buffer
	tagged := Tag(e.State, testStrategies(), &prompt.Script{Answers: []string{"o"}}, &out)

	assert.Equal(t, 1, tagged)
	assert.Equal(t, "ORB", e.State.Positions[0].Strategy)
	assert.Contains(t, out.String(), "Assigned strategy: ORB")
}

func TestTagFallsBackToDefault(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Sell, "SBIN", 5, 200),
		exec("10:30:00", Buy, "SBIN", 5, 190),
	})

	var out bytes.Buffer
	// blank answer, then an unrecognized code on a second day would also fall back
	tagged := Tag(e.State, testStrategies(), prompt.Headless{}, &out)

	assert.Equal(t, 1, tagged)
	assert.Equal(t, "MISC", e.State.Positions[0].Strategy)
	assert.Contains(t, out.String(), "Assigning default strategy: MISC")
}

func TestTagSkipsOpenAndAlreadyTagged(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("09:30:00", Buy, "SBIN", 5, 190), // stays open
		exec("10:00:00", Sell, "IGL", 10, 105),
	})
	e.State.Positions[0].Strategy = "TREND"

	var out bytes.Buffer
	tagged := Tag(e.State, testStrategies(), &prompt.Script{Answers: []string{"P"}}, &out)

	require.Equal(t, 0, tagged)
	assert.Equal(t, "TREND", e.State.Positions[0].Strategy)
	assert.Empty(t, e.State.Positions[1].Strategy)
}

func TestStrategiesByCodeCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := testStrategies()

	name, ok := s.byCode(" t ")
	require.True(t, ok)
	assert.Equal(t, "TREND", name)

	_, ok = s.byCode("x")
	assert.False(t, ok)
	_, ok = s.byCode("")
	assert.False(t, ok)
}
