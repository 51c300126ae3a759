package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dkim-quant/breakout/strategy"
)

const tradeColumns = `trade_id, run_id, symbol, entry_date, exit_date, entry_price, exit_price, quantity, pnl, pnl_pct, reason, holding_days`

func scanTrade(row interface{ Scan(...any) error }) (Trade, error) {
	var (
		t      Trade
		reason string
	)
	err := row.Scan(
		&t.ID,
		&t.RunID,
		&t.Symbol,
		&t.EntryDate,
		&t.ExitDate,
		&t.EntryPrice,
		&t.ExitPrice,
		&t.Quantity,
		&t.PnL,
		&t.PnLPct,
		&reason,
		&t.HoldingDays,
	)
	t.Reason = strategy.Reason(reason)
	return t, err
}

// GetRun returns a persisted run summary by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	row := j.db.QueryRow(`
		SELECT run_id, created, start_date, end_date, initial_capital, final_cash, trades, wins, losses, win_rate, total_return_pct, config
		FROM runs
		WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(
		&r.RunID,
		&r.Created,
		&r.Start,
		&r.End,
		&r.InitialCapital,
		&r.FinalCash,
		&r.Trades,
		&r.Wins,
		&r.Losses,
		&r.WinRate,
		&r.TotalReturnPct,
		&r.Config,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// LatestRun returns the most recently created run summary.
func (j *SQLite) LatestRun() (Run, error) {
	row := j.db.QueryRow(`
		SELECT run_id FROM runs ORDER BY created DESC, run_id DESC LIMIT 1`)

	var runID string
	if err := row.Scan(&runID); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("no runs recorded")
		}
		return Run{}, err
	}
	return j.GetRun(runID)
}

// ListTradesByRun returns a run's trades ordered by exit date.
func (j *SQLite) ListTradesByRun(runID string) ([]Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE run_id = ?
		ORDER BY exit_date ASC, trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesClosedBetween returns trades whose exit_date is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE exit_date >= ? AND exit_date < ?
		ORDER BY exit_date ASC, trade_id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRun returns a run's equity curve in date order.
func (j *SQLite) ListEquityByRun(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, cash, equity, open_positions
		FROM equity
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.RunID, &e.Date, &e.Cash, &e.Equity, &e.OpenPositions); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
