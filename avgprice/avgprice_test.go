package avgprice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	t.Parallel()

	var c Calculator
	require.NoError(t, c.Add(10, 100))
	require.NoError(t, c.Add(20, 130))

	avg, ok := c.Average()
	require.True(t, ok)
	assert.InDelta(t, 120.0, avg, 1e-9)
	assert.Equal(t, 30, c.Quantity())
}

func TestAverageEmpty(t *testing.T) {
	t.Parallel()

	var c Calculator
	_, ok := c.Average()
	assert.False(t, ok)
	assert.Zero(t, c.Quantity())
}

func TestAddRejectsBadLots(t *testing.T) {
	t.Parallel()

	var c Calculator
	assert.Error(t, c.Add(0, 100))
	assert.Error(t, c.Add(-5, 100))
	assert.Error(t, c.Add(10, 0))
	assert.Error(t, c.Add(10, -1))

	// failed adds leave the calculator untouched
	_, ok := c.Average()
	assert.False(t, ok)
}

func TestSingleLot(t *testing.T) {
	t.Parallel()

	var c Calculator
	require.NoError(t, c.Add(7, 42.5))

	avg, ok := c.Average()
	require.True(t, ok)
	assert.Equal(t, 42.5, avg)
}
