package journal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsetrader/logger"
)

func TestWriteReportTotals(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("10:00:00", Sell, "IGL", 10, 105),   // +50
		exec("10:10:00", Sell, "SBIN", 5, 200),
		exec("10:30:00", Buy, "SBIN", 5, 190),    // +50
	})

	var out bytes.Buffer
	WriteReport(&out, e.State)

	report := out.String()
	assert.Contains(t, report, "CLOSED TRADES FOR THE DAY")
	assert.Contains(t, report, "IGL")
	assert.Contains(t, report, "SBIN")
	assert.Contains(t, report, "Squared-off PnL: 100.00")
}

func TestWriteReportNoClosedTrades(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{exec("09:20:00", Buy, "IGL", 10, 100)})

	var out bytes.Buffer
	WriteReport(&out, e.State)
	assert.Contains(t, out.String(), "No closed trades")
}

func TestExportCSVRefusesOpenPositions(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("09:30:00", Sell, "SBIN", 5, 200),
	})

	path := filepath.Join(t.TempDir(), "journal.csv")
	err := ExportCSV(e.State, path)

	var openErr *OpenPositionsError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, []string{"IGL", "SBIN"}, openErr.Symbols)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no file should be written on refusal")
}

func TestExportCSVContent(t *testing.T) {
	t.Parallel()

	e := NewEngine(testDay, nil, logger.Nop())
	e.Process([]Execution{
		exec("09:20:00", Buy, "IGL", 10, 100),
		exec("10:00:00", Sell, "IGL", 10, 105),
	})
	e.State.Positions[0].Strategy = "ORB"

	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, ExportCSV(e.State, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "date,entry,name,trade,exit,strategy,quantity,buy,sell\n" +
		testDay + ",09:20:00,IGL,LONG,10:00:00,ORB,10,100,105\n"
	assert.Equal(t, want, string(data))
}
