package bhavcopy

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Quote is one symbol's daily OHLC snapshot, from either a live
// market-watch export or a bhavcopy settlement file.
type Quote struct {
	Symbol    string
	Open      float64
	High      float64
	Low       float64
	PrevClose float64
	Close     float64 // LTP when sourced from a live market-watch file
}

// Body returns the candle body size (absolute open-to-close move).
func (q Quote) Body() float64 {
	if q.Close >= q.Open {
		return q.Close - q.Open
	}
	return q.Open - q.Close
}

// Green reports a close at or above the open.
func (q Quote) Green() bool { return q.Close >= q.Open }

// marketWatchColumns is the layout of the NSE live market page CSV export.
// Column names on the site carry line breaks, so position is what we trust.
const marketWatchColumns = 14

// ReadMarketWatch parses an NSE market-watch CSV export
// (MW-SEGMENT-dd-Mmm-yyyy.csv). Prices come with thousands separators.
// The LTP column is used as Close. Short or unparsable rows are skipped.
func ReadMarketWatch(path string) ([]Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var quotes []Quote
	header := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read market csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < marketWatchColumns {
			continue
		}

		q := Quote{Symbol: strings.ToUpper(strings.TrimSpace(row[0]))}
		var perr error
		q.Open, perr = price(row[1], perr)
		q.High, perr = price(row[2], perr)
		q.Low, perr = price(row[3], perr)
		q.PrevClose, perr = price(row[4], perr)
		q.Close, perr = price(row[5], perr)
		if perr != nil || q.Symbol == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// ReadBhavcopy parses a settlement file, keeping only the EQ series and,
// when symbols is non-nil, only its members. Bhavcopy columns are resolved
// by header name.
func ReadBhavcopy(path string, symbols map[string]bool) ([]Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bhavcopy: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read bhavcopy header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, need := range []string{"SYMBOL", "SERIES", "OPEN", "HIGH", "LOW", "CLOSE", "PREVCLOSE"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("bhavcopy missing column %s", need)
		}
	}

	var quotes []Quote
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bhavcopy: %w", err)
		}
		if len(row) <= col["PREVCLOSE"] {
			continue
		}
		if strings.TrimSpace(row[col["SERIES"]]) != "EQ" {
			continue
		}

		sym := strings.ToUpper(strings.TrimSpace(row[col["SYMBOL"]]))
		if symbols != nil && !symbols[sym] {
			continue
		}

		q := Quote{Symbol: sym}
		var perr error
		q.Open, perr = price(row[col["OPEN"]], perr)
		q.High, perr = price(row[col["HIGH"]], perr)
		q.Low, perr = price(row[col["LOW"]], perr)
		q.Close, perr = price(row[col["CLOSE"]], perr)
		q.PrevClose, perr = price(row[col["PREVCLOSE"]], perr)
		if perr != nil {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// BySymbol indexes quotes for previous-session lookups.
func BySymbol(quotes []Quote) map[string]Quote {
	m := make(map[string]Quote, len(quotes))
	for _, q := range quotes {
		m[q.Symbol] = q
	}
	return m
}

// price parses a price field, tolerating thousands separators. The error
// threads through so a row with any bad price is skipped as a whole.
func price(s string, prev error) (float64, error) {
	if prev != nil {
		return 0, prev
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0, fmt.Errorf("empty price")
	}
	return strconv.ParseFloat(s, 64)
}
