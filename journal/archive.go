package journal

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	day TEXT NOT NULL,
	position_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	strategy TEXT NOT NULL,
	entry_time TEXT NOT NULL,
	exit_time TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	buy REAL NOT NULL,
	sell REAL NOT NULL,
	realized_pl REAL NOT NULL,
	UNIQUE(day, position_id)
);

CREATE INDEX IF NOT EXISTS idx_trades_day ON trades(day);
`

// ArchivedTrade is one closed round trip in the master journal database.
type ArchivedTrade struct {
	ID         string
	Day        string
	PositionID string
	Symbol     string
	Direction  string
	Strategy   string
	EntryTime  string
	ExitTime   string
	Quantity   int
	Buy        float64
	Sell       float64
	RealizedPL float64
}

// Archive accumulates each day's closed trades into a master SQLite
// journal, so per-day exports can be queried across dates.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (creating if needed) the master journal database.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Append records a day's closed positions. Re-running the journal for the
// same day is a no-op thanks to the (day, position_id) uniqueness, so the
// archive stays idempotent along with the rest of the pipeline. Returns the
// number of rows actually inserted.
func (a *Archive) Append(state *DayState) (int, error) {
	inserted := 0
	for _, p := range state.ClosedPositions() {
		pl, err := p.RealizedPL()
		if err != nil {
			return inserted, fmt.Errorf("position %s: %w", p.ID, err)
		}
		qty, err := strconv.Atoi(p.Quantity)
		if err != nil {
			return inserted, fmt.Errorf("position %s quantity: %w", p.ID, err)
		}
		buy, _ := strconv.ParseFloat(p.Buy, 64)
		sell, _ := strconv.ParseFloat(p.Sell, 64)

		res, err := a.db.Exec(`
			INSERT OR IGNORE INTO trades
			(id, day, position_id, symbol, direction, strategy, entry_time, exit_time, quantity, buy, sell, realized_pl)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ulid.Make().String(), state.Date, p.ID, p.Symbol, p.Trade, p.Strategy,
			p.Entry, p.Exit, qty, buy, sell, pl,
		)
		if err != nil {
			return inserted, fmt.Errorf("archive position %s: %w", p.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	return inserted, nil
}

// ListByDay returns the archived trades for one calendar date, in the order
// they were paired.
func (a *Archive) ListByDay(day string) ([]ArchivedTrade, error) {
	rows, err := a.db.Query(`
		SELECT id, day, position_id, symbol, direction, strategy, entry_time, exit_time, quantity, buy, sell, realized_pl
		FROM trades
		WHERE day = ?
		ORDER BY CAST(position_id AS INTEGER) ASC`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedTrade
	for rows.Next() {
		var t ArchivedTrade
		if err := rows.Scan(
			&t.ID, &t.Day, &t.PositionID, &t.Symbol, &t.Direction, &t.Strategy,
			&t.EntryTime, &t.ExitTime, &t.Quantity, &t.Buy, &t.Sell, &t.RealizedPL,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}
