package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsetrader/config"
	"nsetrader/logger"
	"nsetrader/universe"
)

// journalTestConfig points every journal path into a temp dir with a symbol
// table already in place.
func journalTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	cfg = config.Default()
	cfg.DataDir = dir
	cfg.Journal.OrdersFile = filepath.Join(dir, "orders.csv")
	cfg.Journal.StateDir = filepath.Join(dir, "journal")
	cfg.Journal.ArchiveDB = ""
	cfg.Universe.JSONFile = filepath.Join(dir, "FO.json")
	cfg.Universe.CSVFile = ""
	log = logger.Nop()

	require.NoError(t, universe.Table{"IGL": 1}.Save(cfg.Universe.JSONFile))
}

func TestJournalMissingOrdersFileCompletesNormally(t *testing.T) {
	journalTestConfig(t)

	journalOrdersFile = ""
	journalDate = "2026-08-28"
	journalBatch = true
	defer func() {
		journalDate = ""
		journalBatch = false
	}()

	// no orders.csv and no prior state: nothing to reconcile, exit clean
	assert.NoError(t, runJournal(journalCmd, nil))
}
