package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitEvaluatorRules(t *testing.T) {
	t.Parallel()

	e := ExitEvaluator{StopLossPct: 2.5, TakeProfitPct: 5.0, TimeoutDays: 20}

	tests := []struct {
		name       string
		in         ExitInput
		wantReason Reason
		wantHit    bool
	}{
		{
			name:       "stop_loss_at_threshold",
			in:         ExitInput{EntryPrice: 10000, Close: 9750},
			wantReason: ReasonStopLoss,
			wantHit:    true,
		},
		{
			name:       "stop_loss_below_threshold",
			in:         ExitInput{EntryPrice: 10000, Close: 9000},
			wantReason: ReasonStopLoss,
			wantHit:    true,
		},
		{
			name:       "take_profit_at_threshold",
			in:         ExitInput{EntryPrice: 100, Close: 105},
			wantReason: ReasonTakeProfit,
			wantHit:    true,
		},
		{
			name:       "timeout_at_limit",
			in:         ExitInput{EntryPrice: 100, Close: 101, HoldingDays: 20},
			wantReason: ReasonTimeout,
			wantHit:    true,
		},
		{
			name:    "hold_inside_bands",
			in:      ExitInput{EntryPrice: 100, Close: 101, HoldingDays: 5},
			wantHit: false,
		},
		{
			name:    "hold_just_above_stop",
			in:      ExitInput{EntryPrice: 10000, Close: 9751, HoldingDays: 5},
			wantHit: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reason, hit := e.Evaluate(tt.in)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, tt.wantReason, reason)
			}
		})
	}
}

func TestExitStopBeatsTakeProfit(t *testing.T) {
	t.Parallel()

	// Overlapping thresholds so one close satisfies both rules at once;
	// the stop must win by rule order.
	e := ExitEvaluator{StopLossPct: 2.5, TakeProfitPct: -5.0, TimeoutDays: 20}

	reason, hit := e.Evaluate(ExitInput{EntryPrice: 100, Close: 97})
	assert.True(t, hit)
	assert.Equal(t, ReasonStopLoss, reason)
}

func TestExitTakeProfitBeatsTimeout(t *testing.T) {
	t.Parallel()

	e := ExitEvaluator{StopLossPct: 2.5, TakeProfitPct: 5.0, TimeoutDays: 20}

	reason, hit := e.Evaluate(ExitInput{EntryPrice: 100, Close: 106, HoldingDays: 25})
	assert.True(t, hit)
	assert.Equal(t, ReasonTakeProfit, reason)
}

func TestExitTrailingStop(t *testing.T) {
	t.Parallel()

	e := ExitEvaluator{StopLossPct: 2.5, TakeProfitPct: 5.0, TrailingStopPct: 1.5, TimeoutDays: 20}

	// Armed: pnl above half the target and the giveback breaches 1.5%.
	reason, hit := e.Evaluate(ExitInput{EntryPrice: 100, Close: 103, PeakPrice: 104.8})
	assert.True(t, hit)
	assert.Equal(t, ReasonTrailing, reason)

	// Not armed below half the profit target, whatever the giveback.
	_, hit = e.Evaluate(ExitInput{EntryPrice: 100, Close: 102, PeakPrice: 104.8})
	assert.False(t, hit)

	// Disabled by default.
	off := ExitEvaluator{StopLossPct: 2.5, TakeProfitPct: 5.0, TimeoutDays: 20}
	_, hit = off.Evaluate(ExitInput{EntryPrice: 100, Close: 103, PeakPrice: 104.8})
	assert.False(t, hit)
}
