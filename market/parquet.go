package market

import (
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"
)

// barRecord is the on-disk Parquet schema for bar data.
type barRecord struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    float64 `parquet:"volume"`
}

// ReadParquet loads bars from a Parquet file using the barRecord schema.
// Bars are returned sorted by timestamp.
func ReadParquet(path string) ([]Bar, error) {
	rows, err := parquet.ReadFile[barRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}

	bars := make([]Bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, Bar{
			Symbol: r.Symbol,
			Time:   time.UnixMilli(r.Timestamp).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}

	SortBars(bars)
	return bars, nil
}

// WriteParquet writes bars to a Parquet file in barRecord form. Mostly useful
// for converting CSV datasets into something faster to reload.
func WriteParquet(path string, bars []Bar) error {
	records := make([]barRecord, 0, len(bars))
	for _, b := range bars {
		records = append(records, barRecord{
			Symbol:    b.Symbol,
			Timestamp: b.Time.UnixMilli(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}
	return parquet.WriteFile(path, records)
}
