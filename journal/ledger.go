package journal

// Ledger is the in-memory trade ledger: append-only, never edited.
// It implements Journal so the engine records through one interface
// whether or not a persistent journal is attached.
type Ledger struct {
	trades []Trade
	equity []EquitySnapshot
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) RecordTrade(t Trade) error {
	l.trades = append(l.trades, t)
	return nil
}

func (l *Ledger) RecordEquity(e EquitySnapshot) error {
	l.equity = append(l.equity, e)
	return nil
}

func (l *Ledger) Close() error { return nil }

// Trades returns a copy of the recorded trades in append order.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// EquityCurve returns a copy of the recorded snapshots in append order.
func (l *Ledger) EquityCurve() []EquitySnapshot {
	out := make([]EquitySnapshot, len(l.equity))
	copy(out, l.equity)
	return out
}
