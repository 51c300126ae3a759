package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkim-quant/breakout/strategy"
)

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func sampleTrade(id, runID, sym string, exitDay int, pnl float64) Trade {
	return Trade{
		ID:          id,
		RunID:       runID,
		Symbol:      sym,
		EntryDate:   day(exitDay - 2),
		ExitDate:    day(exitDay),
		EntryPrice:  100,
		ExitPrice:   100 + pnl/10,
		Quantity:    10,
		PnL:         pnl,
		PnLPct:      pnl / 10,
		Reason:      strategy.ReasonTakeProfit,
		HoldingDays: 2,
	}
}

func TestLedgerAppendOrder(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	require.NoError(t, l.RecordTrade(sampleTrade("t-1", "r1", "AAA", 2, 50)))
	require.NoError(t, l.RecordTrade(sampleTrade("t-2", "r1", "BBB", 3, -20)))
	require.NoError(t, l.RecordEquity(EquitySnapshot{RunID: "r1", Date: day(2), Cash: 900, Equity: 1000, OpenPositions: 1}))

	trades := l.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, "t-1", trades[0].ID)
	assert.Equal(t, "t-2", trades[1].ID)

	// Callers get copies; mutating them never touches the ledger.
	trades[0].Symbol = "ZZZ"
	assert.Equal(t, "AAA", l.Trades()[0].Symbol)

	curve := l.EquityCurve()
	require.Len(t, curve, 1)
	assert.Equal(t, 1000.0, curve[0].Equity)
	assert.NoError(t, l.Close())
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	in := sampleTrade("r1-0001", "r1", "005930", 5, 1500)
	require.NoError(t, j.RecordTrade(in))
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		RunID: "r1", Date: day(5), Cash: 500_000, Equity: 1_001_500, OpenPositions: 2,
	}))

	trades, err := j.ListTradesByRun("r1")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	got := trades[0]
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Symbol, got.Symbol)
	assert.True(t, got.EntryDate.Equal(in.EntryDate))
	assert.True(t, got.ExitDate.Equal(in.ExitDate))
	assert.Equal(t, in.Quantity, got.Quantity)
	assert.InDelta(t, in.PnL, got.PnL, 1e-9)
	assert.Equal(t, strategy.ReasonTakeProfit, got.Reason)
	assert.Equal(t, in.HoldingDays, got.HoldingDays)

	curve, err := j.ListEquityByRun("r1")
	require.NoError(t, err)
	require.Len(t, curve, 1)
	assert.InDelta(t, 1_001_500, curve[0].Equity, 1e-9)
	assert.Equal(t, 2, curve[0].OpenPositions)
}

func TestSQLiteRuns(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	first := Run{
		RunID:          "r1",
		Created:        day(0),
		Start:          day(0),
		End:            day(10),
		InitialCapital: 1_000_000,
		FinalCash:      1_050_000,
		Trades:         4,
		Wins:           3,
		Losses:         1,
		WinRate:        75,
		TotalReturnPct: 5,
		Config:         []byte("initial_capital: 1000000\n"),
	}
	second := first
	second.RunID = "r2"
	second.Created = day(1)

	require.NoError(t, j.SaveRun(first))
	require.NoError(t, j.SaveRun(second))

	got, err := j.GetRun("r1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Trades)
	assert.InDelta(t, 75, got.WinRate, 1e-9)
	assert.Equal(t, first.Config, got.Config)

	latest, err := j.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, "r2", latest.RunID)

	_, err = j.GetRun("missing")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteTradesClosedBetween(t *testing.T) {
	t.Parallel()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordTrade(sampleTrade("r1-0001", "r1", "AAA", 3, 10)))
	require.NoError(t, j.RecordTrade(sampleTrade("r1-0002", "r1", "BBB", 5, 20)))
	require.NoError(t, j.RecordTrade(sampleTrade("r1-0003", "r1", "CCC", 8, 30)))

	// Half-open window: day 5 is in, day 8 is out.
	trades, err := j.ListTradesClosedBetween(day(4), day(8))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "BBB", trades[0].Symbol)
}

func TestCSVJournalWritesRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade("r1-0001", "r1", "AAA", 4, -25)))
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		RunID: "r1", Date: day(4), Cash: 975, Equity: 975, OpenPositions: 0,
	}))
	require.NoError(t, j.Close())

	raw, err := os.ReadFile(tradesPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "trade_id,run_id,symbol"))
	assert.Contains(t, lines[1], "r1-0001")
	assert.Contains(t, lines[1], "2024-03-05")
	assert.Contains(t, lines[1], "take_profit")

	raw, err = os.ReadFile(equityPath)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "r1,2024-03-05,975,975,0", lines[1])
}
