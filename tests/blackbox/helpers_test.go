//go:build blackbox

package blackbox

import (
	"encoding/csv"
	"os"
	"strconv"
	"testing"
	"time"
)

// writeBarsCSV emits n daily bars starting 2024-01-01, one calendar day
// apart, with open/high/low collapsed onto the close.
func writeBarsCSV(t *testing.T, path string, n int, bar func(i int) (close, volume float64)) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c, v := bar(i)
		px := strconv.FormatFloat(c, 'f', -1, 64)
		err := w.Write([]string{
			base.AddDate(0, 0, i).Format("2006-01-02"),
			px, px, px, px,
			strconv.FormatFloat(v, 'f', -1, 64),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
