package indicators

import (
	"fmt"

	"github.com/dkim-quant/breakout/market"
)

// RollingHigh is a streaming rolling maximum of the bar high.
type RollingHigh struct {
	period int
	highs  []float64
}

func NewRollingHigh(period int) *RollingHigh {
	return &RollingHigh{
		period: period,
		highs:  make([]float64, 0, period),
	}
}

func (r *RollingHigh) Name() string {
	return fmt.Sprintf("HIGH(%d)", r.period)
}

func (r *RollingHigh) Warmup() int {
	return r.period
}

func (r *RollingHigh) Reset() {
	r.highs = r.highs[:0]
}

func (r *RollingHigh) Update(b market.Bar) {
	r.highs = append(r.highs, b.High)
	// Keep only the last 'period' highs
	if len(r.highs) > r.period {
		r.highs = r.highs[1:]
	}
}

func (r *RollingHigh) Ready() bool {
	return len(r.highs) >= r.period
}

func (r *RollingHigh) Value() float64 {
	if !r.Ready() {
		return 0
	}
	max := r.highs[0]
	for _, h := range r.highs[1:] {
		if h > max {
			max = h
		}
	}
	return max
}

// VolumeMA is a streaming simple moving average of the bar volume.
type VolumeMA struct {
	period int
	vols   []float64
	sum    float64
}

func NewVolumeMA(period int) *VolumeMA {
	return &VolumeMA{
		period: period,
		vols:   make([]float64, 0, period),
	}
}

func (m *VolumeMA) Name() string {
	return fmt.Sprintf("VOLMA(%d)", m.period)
}

func (m *VolumeMA) Warmup() int {
	return m.period
}

func (m *VolumeMA) Reset() {
	m.vols = m.vols[:0]
	m.sum = 0
}

func (m *VolumeMA) Update(b market.Bar) {
	m.vols = append(m.vols, b.Volume)
	m.sum += b.Volume
	if len(m.vols) > m.period {
		m.sum -= m.vols[0]
		m.vols = m.vols[1:]
	}
}

func (m *VolumeMA) Ready() bool {
	return len(m.vols) >= m.period
}

func (m *VolumeMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.sum / float64(len(m.vols))
}

// PctChange is the percent change of close versus the close 'period' bars ago.
type PctChange struct {
	period int
	closes []float64
}

func NewPctChange(period int) *PctChange {
	return &PctChange{
		period: period,
		closes: make([]float64, 0, period+1),
	}
}

func (p *PctChange) Name() string {
	return fmt.Sprintf("CHG(%d)", p.period)
}

func (p *PctChange) Warmup() int {
	return p.period + 1
}

func (p *PctChange) Reset() {
	p.closes = p.closes[:0]
}

func (p *PctChange) Update(b market.Bar) {
	p.closes = append(p.closes, b.Close)
	if len(p.closes) > p.period+1 {
		p.closes = p.closes[1:]
	}
}

func (p *PctChange) Ready() bool {
	return len(p.closes) >= p.period+1 && p.closes[0] != 0
}

func (p *PctChange) Value() float64 {
	if !p.Ready() {
		return 0
	}
	old := p.closes[0]
	cur := p.closes[len(p.closes)-1]
	return (cur - old) / old * 100
}
