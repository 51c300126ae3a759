package strategy

import (
	"time"

	"github.com/dkim-quant/breakout/indicators"
)

// Screener evaluates a prepared bar for breakout entry eligibility.
// It is a pure function of the day's bar; it holds no state.
type Screener struct {
	MinBreakoutPct   float64 // minimum close above the lagged 20-bar high, percent
	VolumeSurgeRatio float64 // minimum volume over its 20-bar average
}

// Signal describes an eligible entry, carrying the readings that
// triggered it for journaling and reports.
type Signal struct {
	Symbol      string
	Date        time.Time
	Close       float64
	BreakoutPct float64
	VolRatio    float64
}

// Eligible reports whether the bar qualifies for entry. A bar whose
// indicator windows are incomplete is never eligible; that is missing
// data, not a zero reading.
func (s Screener) Eligible(symbol string, pb indicators.PreparedBar) (Signal, bool) {
	if !pb.Ready {
		return Signal{}, false
	}

	breakoutPct := (pb.Close - pb.High20) / pb.High20 * 100
	if breakoutPct < s.MinBreakoutPct {
		return Signal{}, false
	}
	if pb.VolRatio < s.VolumeSurgeRatio {
		return Signal{}, false
	}

	return Signal{
		Symbol:      symbol,
		Date:        pb.Date,
		Close:       pb.Close,
		BreakoutPct: breakoutPct,
		VolRatio:    pb.VolRatio,
	}, true
}
