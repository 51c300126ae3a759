// Package market holds daily OHLCV bar data and its loading.
package market

import "time"

// DateLayout is the on-disk date format for daily bars.
const DateLayout = "2006-01-02"

// Bar is one daily OHLCV bar. Date is a UTC midnight.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day truncates t to a UTC midnight so bar dates compare with ==.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
