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

// ReadCSV loads bars from a CSV file with rows
//
//	time,symbol,open,high,low,close,volume
//
// where time is RFC3339 or RFC3339Nano. A single header row ("time,...") is
// allowed. Empty rows are skipped. Bars are returned sorted by timestamp.
func ReadCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []Bar
	sawFirst := false

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row.
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		b, ok, err := parseBarRow(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		bars = append(bars, b)
	}

	SortBars(bars)
	return bars, nil
}

func parseBarRow(row []string) (Bar, bool, error) {
	// Need: time,symbol,open,high,low,close,volume
	if len(row) < 7 {
		return Bar{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return Bar{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339Nano, ts)
		if err2 != nil {
			return Bar{}, false, fmt.Errorf("bad time %q: %w", ts, err)
		}
		t = t2
	}

	symbol := strings.TrimSpace(row[1])
	if symbol == "" {
		return Bar{}, false, nil
	}

	vals := make([]float64, 5)
	names := []string{"open", "high", "low", "close", "volume"}
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+2]), 64)
		if err != nil {
			return Bar{}, false, fmt.Errorf("bad %s %q: %w", names[i], row[i+2], err)
		}
		vals[i] = v
	}

	return Bar{
		Symbol: symbol,
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, true, nil
}
