package sim

import (
	"fmt"
	"time"
)

// Config holds every tunable of one simulation run. It is immutable once
// handed to NewEngine, so multiple engines with different parameter sets
// can run side by side over the same prepared data.
type Config struct {
	InitialCapital float64
	StartDate      time.Time
	EndDate        time.Time

	MinBreakoutPct   float64 // minimum breakout above the lagged 20-day high, percent
	VolumeSurgeRatio float64 // minimum volume over its 20-day average

	StopLossPct     float64 // loss percent that forces an exit
	TakeProfitPct   float64 // gain percent that takes profit
	TrailingStopPct float64 // giveback from the peak close; 0 disables
	TimeoutDays     int     // maximum holding period in calendar days

	MaxPositions    int     // concurrent open position cap
	PositionSizePct float64 // target position value as percent of equity
}

// Validate rejects configurations the simulator must never start with.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("sim: initial capital must be positive")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("sim: start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("sim: end date %s is before start date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	if c.MinBreakoutPct <= 0 {
		return fmt.Errorf("sim: min breakout pct must be positive")
	}
	if c.VolumeSurgeRatio <= 0 {
		return fmt.Errorf("sim: volume surge ratio must be positive")
	}
	if c.StopLossPct <= 0 {
		return fmt.Errorf("sim: stop loss pct must be positive")
	}
	if c.TakeProfitPct <= 0 {
		return fmt.Errorf("sim: take profit pct must be positive")
	}
	if c.TrailingStopPct < 0 {
		return fmt.Errorf("sim: trailing stop pct must not be negative")
	}
	if c.TimeoutDays < 1 {
		return fmt.Errorf("sim: timeout days must be at least 1")
	}
	if c.MaxPositions < 1 {
		return fmt.Errorf("sim: max positions must be at least 1")
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 100 {
		return fmt.Errorf("sim: position size pct must be in (0, 100]")
	}
	return nil
}
