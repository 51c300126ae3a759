package market

import (
	"fmt"
	"time"
)

// Series is one symbol's daily bars in strictly ascending date order.
type Series struct {
	Symbol string
	Bars   []Bar
}

// Validate checks the ascending-date invariant the simulator relies on.
func (s *Series) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("series: symbol is required")
	}
	if len(s.Bars) == 0 {
		return fmt.Errorf("series %s: no bars", s.Symbol)
	}
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			return fmt.Errorf("series %s: bars not strictly ascending at %s",
				s.Symbol, s.Bars[i].Date.Format(DateLayout))
		}
	}
	return nil
}

// Clip returns a shallow copy restricted to [from, to]. A zero bound is open.
func (s *Series) Clip(from, to time.Time) *Series {
	out := &Series{Symbol: s.Symbol}
	for _, b := range s.Bars {
		if !from.IsZero() && b.Date.Before(from) {
			continue
		}
		if !to.IsZero() && b.Date.After(to) {
			continue
		}
		out.Bars = append(out.Bars, b)
	}
	return out
}
