package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t Trade) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, entry_date, exit_date, entry_price, exit_price, quantity, pnl, pnl_pct, reason, holding_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.RunID, t.Symbol, t.EntryDate, t.ExitDate,
		t.EntryPrice, t.ExitPrice, t.Quantity, t.PnL, t.PnLPct,
		string(t.Reason), t.HoldingDays,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, date, cash, equity, open_positions)
		VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Date, e.Cash, e.Equity, e.OpenPositions,
	)
	return err
}

// SaveRun persists the run summary after a backtest completes.
func (j *SQLite) SaveRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, start_date, end_date, initial_capital, final_cash, trades, wins, losses, win_rate, total_return_pct, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Start, r.End, r.InitialCapital, r.FinalCash,
		r.Trades, r.Wins, r.Losses, r.WinRate, r.TotalReturnPct, r.Config,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
