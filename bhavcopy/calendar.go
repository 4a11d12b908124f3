package bhavcopy

import "time"

// holidayKey is the format trading holidays are listed in ("25-Dec-2025").
const holidayKey = "02-Jan-2006"

// IsTradingHoliday reports whether the date is a weekend or appears in the
// configured holiday list.
func IsTradingHoliday(day time.Time, holidays []string) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	key := day.Format(holidayKey)
	for _, h := range holidays {
		if h == key {
			return true
		}
	}
	return false
}

// PrevTradingDay walks back from the day before the given date to the most
// recent trading session.
func PrevTradingDay(day time.Time, holidays []string) time.Time {
	prev := day.AddDate(0, 0, -1)
	for IsTradingHoliday(prev, holidays) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}
