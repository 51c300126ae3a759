package sim

import "time"

// Position is one open holding. At most one position exists per symbol;
// the engine owns it exclusively from entry to exit.
type Position struct {
	Symbol     string
	Quantity   int64
	EntryPrice float64
	EntryDate  time.Time

	// LastPrice is the latest close seen for the symbol. On days the
	// symbol prints no bar it goes stale and remains the mark-to-market
	// basis until a fresh bar appears.
	LastPrice float64

	// PeakPrice is the highest close observed while holding.
	PeakPrice float64
}

// MarketValue marks the position at its last known price.
func (p *Position) MarketValue() float64 {
	return float64(p.Quantity) * p.LastPrice
}

func holdingDays(entry, now time.Time) int {
	return int(now.Sub(entry).Hours() / 24)
}
