// Package risk holds position sizing math.
package risk

import "math"

// Shares returns the integer share count for a target allocation of
// sizePct percent of equity at the given price. The count is floored;
// a result of 0 means the allocation cannot buy a single share.
func Shares(equity, sizePct, price float64) int64 {
	if price <= 0 || equity <= 0 || sizePct <= 0 {
		return 0
	}
	target := equity * sizePct / 100
	return int64(math.Floor(target / price))
}

// PnL is the realized profit of a closed long position.
func PnL(entry, exit float64, quantity int64) float64 {
	return (exit - entry) * float64(quantity)
}

// PnLPct is the percent return of a price move from entry.
func PnLPct(entry, price float64) float64 {
	return (price - entry) / entry * 100
}
