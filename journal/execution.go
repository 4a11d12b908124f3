package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Side of a broker execution.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Execution is one normalized row of the broker's order export: a single
// executed leg. The export has one row per leg, ascending by time.
type Execution struct {
	Date     string // "2006-01-02", taken from the Time column
	Time     string // clock time, "15:04:05"
	Side     Side
	Symbol   string
	Product  string
	Quantity int     // filled count from the "filled/total" pair
	AvgPrice float64 // average fill price
	Status   string
}

// Columns required in the orders export header.
var requiredColumns = []string{"Time", "Type", "Instrument", "Product", "Qty.", "Avg. price", "Status"}

// ParseExecution normalizes one raw row, keyed by header name. A missing or
// unparsable field yields an error; the caller drops the row and moves on.
func ParseExecution(row map[string]string) (Execution, error) {
	for _, col := range requiredColumns {
		if strings.TrimSpace(row[col]) == "" {
			return Execution{}, fmt.Errorf("missing field %q", col)
		}
	}

	date, clock, ok := strings.Cut(strings.TrimSpace(row["Time"]), " ")
	if !ok {
		return Execution{}, fmt.Errorf("time %q not of form \"date clock\"", row["Time"])
	}

	side := Side(strings.ToUpper(strings.TrimSpace(row["Type"])))
	if side != Buy && side != Sell {
		return Execution{}, fmt.Errorf("unknown order type %q", row["Type"])
	}

	// "3/3" means 3 filled out of 3; only the filled count matters.
	filled, _, _ := strings.Cut(strings.TrimSpace(row["Qty."]), "/")
	qty, err := strconv.Atoi(filled)
	if err != nil {
		return Execution{}, fmt.Errorf("quantity %q: %w", row["Qty."], err)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row["Avg. price"]), 64)
	if err != nil {
		return Execution{}, fmt.Errorf("avg price %q: %w", row["Avg. price"], err)
	}

	return Execution{
		Date:     date,
		Time:     clock,
		Side:     side,
		Symbol:   strings.ToUpper(strings.TrimSpace(row["Instrument"])),
		Product:  strings.ToUpper(strings.TrimSpace(row["Product"])),
		Quantity: qty,
		AvgPrice: price,
		Status:   strings.TrimSpace(row["Status"]),
	}, nil
}

// ReadOrdersCSV reads a broker orders export and returns its rows keyed by
// header name, sorted ascending by the Time column. Rows are returned raw;
// normalization and per-row validation happen in ParseExecution so one bad
// row cannot abort the scan.
func ReadOrdersCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}
	if len(records) < 1 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.TrimSpace(col)] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i]["Time"] < rows[j]["Time"]
	})
	return rows, nil
}
