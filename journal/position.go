package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Direction of a position: LONG opens with a buy, SHORT opens with a sell.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Position is one round trip being assembled: opened by the first leg,
// closed when the opposite leg arrives. Quantity is fixed at creation; the
// exit fields and strategy tag are the only later additions.
//
// The JSON field names match the per-day state file layout, with prices and
// quantity kept as strings so that load followed by save reproduces the file
// byte for byte.
type Position struct {
	ID       string `json:"-"`
	Date     string `json:"date"`
	Entry    string `json:"entry"`
	Trade    string `json:"trade"` // LONG or SHORT
	Symbol   string `json:"name"`
	Quantity string `json:"quantity"`
	Buy      string `json:"buy,omitempty"`
	Sell     string `json:"sell,omitempty"`
	Exit     string `json:"exit,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// Open reports whether the position still awaits its square-off leg.
func (p *Position) Open() bool { return p.Exit == "" }

// Direction returns the typed trade direction.
func (p *Position) Direction() Direction { return Direction(p.Trade) }

// Qty returns the position size as a number.
func (p *Position) Qty() (int, error) {
	return strconv.Atoi(p.Quantity)
}

// RealizedPL computes the realized profit of a closed position:
// quantity x (sell - buy). The signed buy/sell assignment at entry and exit
// already encodes the direction, so the same formula covers LONG and SHORT.
func (p *Position) RealizedPL() (float64, error) {
	if p.Open() {
		return 0, fmt.Errorf("position %s (%s) still open", p.ID, p.Symbol)
	}
	qty, err := strconv.ParseFloat(p.Quantity, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", p.Quantity, err)
	}
	buy, err := strconv.ParseFloat(p.Buy, 64)
	if err != nil {
		return 0, fmt.Errorf("buy price %q: %w", p.Buy, err)
	}
	sell, err := strconv.ParseFloat(p.Sell, 64)
	if err != nil {
		return 0, fmt.Errorf("sell price %q: %w", p.Sell, err)
	}
	return qty * (sell - buy), nil
}

// DayState holds one trading day's positions in scan order. Sequential
// 1-based string ids double as the keys of the persisted JSON document.
type DayState struct {
	Date      string
	Positions []*Position
}

// NewDayState returns an empty state for the given calendar date.
func NewDayState(date string) *DayState {
	return &DayState{Date: date}
}

// Append assigns the next sequential id and adds the position.
func (s *DayState) Append(p *Position) *Position {
	p.ID = strconv.Itoa(len(s.Positions) + 1)
	s.Positions = append(s.Positions, p)
	return p
}

// FirstOpenMatch returns the lowest-id open position with the given symbol
// and quantity whose direction is opposite the incoming side, or nil.
// First-open, first-closed: scan order resolves re-entries of the same
// symbol and size within a session.
func (s *DayState) FirstOpenMatch(symbol, quantity string, incoming Side) *Position {
	for _, p := range s.Positions {
		if !p.Open() {
			continue
		}
		if p.Symbol != symbol || p.Quantity != quantity {
			continue
		}
		if incoming == Sell && p.Direction() == Long {
			return p
		}
		if incoming == Buy && p.Direction() == Short {
			return p
		}
	}
	return nil
}

// OpenPositions returns the positions still awaiting square-off, in scan order.
func (s *DayState) OpenPositions() []*Position {
	var open []*Position
	for _, p := range s.Positions {
		if p.Open() {
			open = append(open, p)
		}
	}
	return open
}

// ClosedPositions returns the completed round trips, in scan order.
func (s *DayState) ClosedPositions() []*Position {
	var closed []*Position
	for _, p := range s.Positions {
		if !p.Open() {
			closed = append(closed, p)
		}
	}
	return closed
}

// MarshalJSON renders the state as an id-keyed object with ids in
// numeric order, so repeated save cycles of the same state are
// byte-identical.
func (s *DayState) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, p := range s.Positions {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(p.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":")
		buf.Write(val)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the id-keyed object, ordering positions by
// numeric id so scan order (and with it the FIFO tie-break) survives the
// round trip.
func (s *DayState) UnmarshalJSON(data []byte) error {
	byID := map[string]*Position{}
	if err := json.Unmarshal(data, &byID); err != nil {
		return err
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})

	s.Positions = s.Positions[:0]
	for _, id := range ids {
		p := byID[id]
		p.ID = id
		s.Positions = append(s.Positions, p)
		if s.Date == "" {
			s.Date = p.Date
		}
	}
	return nil
}
