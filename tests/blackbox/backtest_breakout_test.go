//go:build blackbox

package blackbox

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestBacktestBreakout_JournalsTrades(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "backtest.sqlite")
	cfgPath := filepath.Join(dir, "config.yaml")

	// Flat 20-day warmup, then a 2% close above the prior high on 4.75x
	// the average volume. The window is that single breakout day, so the
	// position opens and is force-closed at the same price.
	writeBarsCSV(t, filepath.Join(dir, "005930.csv"), 21, func(i int) (float64, float64) {
		if i < 20 {
			return 100, 1000
		}
		return 102, 4750
	})

	writeFile(t, cfgPath, `
initial_capital: 1000000
symbols: ["005930"]
start_date: "2024-01-21"
end_date: "2024-01-21"
lookback_days: 30
data_dir: `+dir+`
journal:
  type: sqlite
  db_path: `+dbPath+`
`)

	out := run(t, "backtest", "-c", cfgPath)
	if !strings.Contains(out, "Backtest Result") {
		t.Fatalf("missing summary in output:\n%s", out)
	}
	if !strings.Contains(out, "Trades:          1") {
		t.Fatalf("expected exactly one trade:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var reason string
	var qty int64
	var pnl float64
	err = db.QueryRow(`SELECT reason, quantity, pnl FROM trades`).Scan(&reason, &qty, &pnl)
	if err != nil {
		t.Fatal(err)
	}
	if reason != "forced" {
		t.Fatalf("reason = %q, want forced", reason)
	}
	if qty != 980 {
		t.Fatalf("quantity = %d, want 980", qty)
	}
	if pnl != 0 {
		t.Fatalf("pnl = %v, want 0", pnl)
	}

	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}
}

func TestReport_PrintsLatestRun(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "backtest.sqlite")
	cfgPath := filepath.Join(dir, "config.yaml")

	writeBarsCSV(t, filepath.Join(dir, "005930.csv"), 21, func(i int) (float64, float64) {
		if i < 20 {
			return 100, 1000
		}
		return 102, 4750
	})

	writeFile(t, cfgPath, `
initial_capital: 1000000
symbols: ["005930"]
start_date: "2024-01-21"
end_date: "2024-01-21"
lookback_days: 30
data_dir: `+dir+`
journal:
  type: sqlite
  db_path: `+dbPath+`
`)

	run(t, "backtest", "-c", cfgPath)
	out := run(t, "report", "-d", dbPath)

	if !strings.Contains(out, "Backtest Result") {
		t.Fatalf("missing summary in report output:\n%s", out)
	}
	if !strings.Contains(out, "forced") {
		t.Fatalf("missing exit reason histogram:\n%s", out)
	}
}
