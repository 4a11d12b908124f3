package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsetrader/bhavcopy"
)

func orbParams() ORBParams {
	return ORBParams{
		Risk:        1000,
		LongStocks:  2,
		ShortStocks: 2,
		LowerPrice:  30,
		UpperPrice:  3000,
	}
}

func TestORBSplitsSides(t *testing.T) {
	t.Parallel()

	quotes := []bhavcopy.Quote{
		{Symbol: "GAPUP", Open: 102, High: 106, Low: 101, PrevClose: 100},
		{Symbol: "GAPDOWN", Open: 98, High: 99, Low: 95, PrevClose: 100},
		{Symbol: "FLAT", Open: 100, High: 104, Low: 99, PrevClose: 100},
	}

	long, short := ORB(quotes, orbParams())

	require.Len(t, long, 1)
	assert.Equal(t, "GAPUP", long[0].Symbol)
	assert.Equal(t, 2.0, long[0].GapPct)
	assert.Equal(t, 6.0, long[0].RangePct) // (106-100)/100
	assert.Equal(t, 200, long[0].Qty)      // 1000 / (106-101)

	require.Len(t, short, 1)
	assert.Equal(t, "GAPDOWN", short[0].Symbol)
	assert.Equal(t, 2.0, short[0].GapPct)
	assert.Equal(t, 5.0, short[0].RangePct) // (100-95)/100
	assert.Equal(t, 250, short[0].Qty)      // 1000 / (99-95)
}

func TestORBRanksAndTruncates(t *testing.T) {
	t.Parallel()

	quotes := []bhavcopy.Quote{
		{Symbol: "A", Open: 101, High: 103, Low: 100, PrevClose: 100}, // range 3%
		{Symbol: "B", Open: 102, High: 108, Low: 101, PrevClose: 100}, // range 8%
		{Symbol: "C", Open: 103, High: 105, Low: 102, PrevClose: 100}, // range 5%
	}

	long, short := ORB(quotes, orbParams())
	assert.Empty(t, short)

	require.Len(t, long, 2)
	assert.Equal(t, "B", long[0].Symbol)
	assert.Equal(t, "C", long[1].Symbol)
}

func TestORBRangeTieBrokenByGap(t *testing.T) {
	t.Parallel()

	quotes := []bhavcopy.Quote{
		{Symbol: "SMALLGAP", Open: 101, High: 104, Low: 100, PrevClose: 100},
		{Symbol: "BIGGAP", Open: 103, High: 104, Low: 100, PrevClose: 100},
	}

	long, _ := ORB(quotes, orbParams())
	require.Len(t, long, 2)
	assert.Equal(t, "BIGGAP", long[0].Symbol)
	assert.Equal(t, "SMALLGAP", long[1].Symbol)
}

func TestORBPriceBandAndDegenerateRange(t *testing.T) {
	t.Parallel()

	quotes := []bhavcopy.Quote{
		{Symbol: "CHEAP", Open: 20, High: 22, Low: 19, PrevClose: 19},
		{Symbol: "PRICEY", Open: 3100, High: 3200, Low: 3050, PrevClose: 3000},
		{Symbol: "NORANGE", Open: 101, High: 101, Low: 101, PrevClose: 100},
	}

	long, short := ORB(quotes, orbParams())
	assert.Empty(t, long)
	assert.Empty(t, short)
}
