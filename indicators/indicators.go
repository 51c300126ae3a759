// Package indicators provides streaming trailing indicators over daily bars
// and the per-symbol preparation pass that annotates a raw series.
package indicators

import "github.com/dkim-quant/breakout/market"

// Indicator computes a single streaming value from daily bars.
// It is deterministic: identical bar sequences yield identical values.
type Indicator interface {
	// Name returns a stable identifier like "HIGH(20)" or "VOLMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* daily bar.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. Callers must check Ready();
	// an indicator that is not ready returns 0, which is not a valid reading.
	Value() float64
}
