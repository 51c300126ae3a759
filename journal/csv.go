package journal

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/dkim-quant/breakout/market"
)

type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"trade_id", "run_id", "symbol", "entry_date", "exit_date", "entry_price", "exit_price", "quantity", "pnl", "pnl_pct", "reason", "holding_days"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "date", "cash", "equity", "open_positions"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, ew, tf, ef}, nil
}

func (j *CSVJournal) RecordTrade(t Trade) error {
	err := j.trades.Write([]string{
		t.ID,
		t.RunID,
		t.Symbol,
		t.EntryDate.Format(market.DateLayout),
		t.ExitDate.Format(market.DateLayout),
		f(t.EntryPrice),
		f(t.ExitPrice),
		strconv.FormatInt(t.Quantity, 10),
		f(t.PnL),
		f(t.PnLPct),
		string(t.Reason),
		strconv.Itoa(t.HoldingDays),
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Date.Format(market.DateLayout),
		f(e.Cash),
		f(e.Equity),
		strconv.Itoa(e.OpenPositions),
	})
	if err != nil {
		return err
	}

	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	j.equity.Flush()
	if err := j.tf.Close(); err != nil {
		j.ef.Close()
		return err
	}
	return j.ef.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
