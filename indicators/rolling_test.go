package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkim-quant/breakout/market"
)

func TestRollingHigh(t *testing.T) {
	t.Parallel()

	r := NewRollingHigh(3)
	assert.Equal(t, 3, r.Warmup())
	assert.False(t, r.Ready())
	assert.Equal(t, 0.0, r.Value())

	r.Update(market.Bar{High: 10})
	r.Update(market.Bar{High: 12})
	assert.False(t, r.Ready())

	r.Update(market.Bar{High: 11})
	assert.True(t, r.Ready())
	assert.Equal(t, 12.0, r.Value())

	// The oldest high (10) falls out; 12 still dominates.
	r.Update(market.Bar{High: 9})
	assert.Equal(t, 12.0, r.Value())

	// Now 12 falls out.
	r.Update(market.Bar{High: 8})
	assert.Equal(t, 11.0, r.Value())

	r.Reset()
	assert.False(t, r.Ready())
}

func TestVolumeMA(t *testing.T) {
	t.Parallel()

	m := NewVolumeMA(3)
	m.Update(market.Bar{Volume: 100})
	m.Update(market.Bar{Volume: 200})
	assert.False(t, m.Ready())

	m.Update(market.Bar{Volume: 300})
	assert.True(t, m.Ready())
	assert.InDelta(t, 200.0, m.Value(), 1e-9)

	m.Update(market.Bar{Volume: 400})
	assert.InDelta(t, 300.0, m.Value(), 1e-9)
}

func TestPctChange(t *testing.T) {
	t.Parallel()

	p := NewPctChange(2)
	p.Update(market.Bar{Close: 100})
	p.Update(market.Bar{Close: 105})
	assert.False(t, p.Ready())

	p.Update(market.Bar{Close: 110})
	assert.True(t, p.Ready())
	assert.InDelta(t, 10.0, p.Value(), 1e-9)

	p.Update(market.Bar{Close: 105})
	assert.InDelta(t, 0.0, p.Value(), 1e-9)
}
