package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads one symbol's daily bars from a CSV file with rows
//
//	date,open,high,low,close,volume
//
// where date is 2006-01-02. A header row ("date,...") is allowed.
// Empty/short rows are skipped. Bars must be strictly ascending by date.
func LoadCSV(path, symbol string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	s := &Series{Symbol: symbol}
	sawFirst := false

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		b, ok, err := parseBarRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			continue
		}
		s.Bars = append(s.Bars, b)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseBarRow(row []string) (Bar, bool, error) {
	// Need date,open,high,low,close,volume
	if len(row) < 6 {
		return Bar{}, false, nil
	}

	ds := strings.TrimSpace(row[0])
	if ds == "" {
		return Bar{}, false, nil
	}
	d, err := time.ParseInLocation(DateLayout, ds, time.UTC)
	if err != nil {
		return Bar{}, false, fmt.Errorf("bad date %q: %w", ds, err)
	}

	vals := make([]float64, 5)
	names := []string{"open", "high", "low", "close", "volume"}
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Bar{}, false, fmt.Errorf("bad %s %q: %w", names[i], row[i+1], err)
		}
		vals[i] = v
	}

	return Bar{
		Date:   Day(d),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, true, nil
}
