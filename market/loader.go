package market

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// loadWorkers bounds per-symbol concurrency in LoadDir.
const loadWorkers = 8

// LoadDir loads <SYMBOL>.csv from dir for every symbol, concurrently,
// and clips each series to [from, to] (zero bounds are open).
//
// A symbol whose file is missing or malformed is logged and dropped from
// the result; the load only fails when no symbol could be read. The
// simulator never sees partially-loaded data: everything returned here
// is fully materialized and date-sorted.
func LoadDir(dir string, symbols []string, from, to time.Time) (map[string]*Series, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("market: no symbols to load")
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]*Series, len(symbols))
		sem = make(chan struct{}, loadWorkers)
	)

	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			path := filepath.Join(dir, sym+".csv")
			s, err := LoadCSV(path, sym)
			if err != nil {
				log.Printf("market: dropping %s: %v", sym, err)
				return
			}
			s = s.Clip(from, to)
			if len(s.Bars) == 0 {
				log.Printf("market: dropping %s: no bars in range", sym)
				return
			}

			mu.Lock()
			out[sym] = s
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	if len(out) == 0 {
		return nil, fmt.Errorf("market: no symbol data loaded from %s", dir)
	}
	return out, nil
}

// Symbols returns the loaded symbols in sorted order.
func Symbols(data map[string]*Series) []string {
	syms := make([]string, 0, len(data))
	for s := range data {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}
