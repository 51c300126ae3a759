package indicators

import (
	"sort"
	"time"

	"github.com/dkim-quant/breakout/market"
)

// TrailingPeriod is the lookback of the breakout high and volume average.
const TrailingPeriod = 20

// PreparedBar is a daily bar annotated with trailing indicators.
//
// High20 is the rolling maximum of High over the 20 bars strictly before
// this one; the current bar never sees its own high (no lookahead).
// VolAvg20 includes the current bar, matching how the volume surge ratio
// is defined. Ready is false while any window is incomplete; a bar that
// is not Ready must be excluded from screening, never treated as zero.
type PreparedBar struct {
	market.Bar

	High20   float64
	VolAvg20 float64
	VolRatio float64

	Change1  float64
	Change5  float64
	Change20 float64

	Ready bool
}

// Prepared is one symbol's annotated series with an explicit date lookup.
type Prepared struct {
	Symbol string
	Bars   []PreparedBar

	byDate map[time.Time]int
}

// ByDate returns the prepared bar for a date, reporting presence explicitly
// so "no data" can never be confused with a zero-valued bar.
func (p *Prepared) ByDate(date time.Time) (PreparedBar, bool) {
	i, ok := p.byDate[date]
	if !ok {
		return PreparedBar{}, false
	}
	return p.Bars[i], true
}

// Dates returns every bar date in ascending order.
func (p *Prepared) Dates() []time.Time {
	out := make([]time.Time, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Date
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Prepare annotates a date-sorted series with trailing indicators.
// The input is not modified.
func Prepare(s *market.Series) *Prepared {
	var (
		high  = NewRollingHigh(TrailingPeriod)
		volMA = NewVolumeMA(TrailingPeriod)
		chg1  = NewPctChange(1)
		chg5  = NewPctChange(5)
		chg20 = NewPctChange(TrailingPeriod)
	)

	p := &Prepared{
		Symbol: s.Symbol,
		Bars:   make([]PreparedBar, 0, len(s.Bars)),
		byDate: make(map[time.Time]int, len(s.Bars)),
	}

	for _, b := range s.Bars {
		pb := PreparedBar{Bar: b}

		// The breakout high is read before this bar updates the window,
		// lagging it by exactly one bar.
		laggedReady := high.Ready()
		if laggedReady {
			pb.High20 = high.Value()
		}
		high.Update(b)

		// The volume average includes the current bar.
		volMA.Update(b)
		chg1.Update(b)
		chg5.Update(b)
		chg20.Update(b)

		if volMA.Ready() {
			pb.VolAvg20 = volMA.Value()
		}
		if chg1.Ready() {
			pb.Change1 = chg1.Value()
		}
		if chg5.Ready() {
			pb.Change5 = chg5.Value()
		}
		if chg20.Ready() {
			pb.Change20 = chg20.Value()
		}

		pb.Ready = laggedReady && volMA.Ready() && pb.VolAvg20 > 0 && pb.High20 > 0
		if pb.Ready {
			pb.VolRatio = b.Volume / pb.VolAvg20
		}

		p.byDate[b.Date] = len(p.Bars)
		p.Bars = append(p.Bars, pb)
	}

	return p
}

// PrepareAll prepares every loaded series.
func PrepareAll(data map[string]*market.Series) map[string]*Prepared {
	out := make(map[string]*Prepared, len(data))
	for sym, s := range data {
		out[sym] = Prepare(s)
	}
	return out
}
