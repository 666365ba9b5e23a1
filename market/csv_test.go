package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `time,symbol,open,high,low,close,volume
2024-01-02T00:00:00Z,SPY,100,101,99,100.5,10000
2024-01-03T00:00:00Z,SPY,100.5,102,100,101.5,12000
`)

	bars, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	b := bars[0]
	assert.Equal(t, "SPY", b.Symbol)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), b.Time)
	assert.Equal(t, 100.0, b.Open)
	assert.Equal(t, 101.0, b.High)
	assert.Equal(t, 99.0, b.Low)
	assert.Equal(t, 100.5, b.Close)
	assert.Equal(t, 10_000.0, b.Volume)
}

func TestReadCSVNoHeader(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "2024-01-02T00:00:00Z,SPY,100,101,99,100.5,10000\n")

	bars, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestReadCSVSortsByTime(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `2024-01-03T00:00:00Z,SPY,1,2,0,1,1
2024-01-02T00:00:00Z,SPY,1,2,0,1,1
`)

	bars, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
}

func TestReadCSVBadRows(t *testing.T) {
	t.Parallel()

	t.Run("bad time", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "not-a-time,SPY,1,2,0,1,1\n")
		_, err := ReadCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad time")
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, "2024-01-02T00:00:00Z,SPY,1,2,0,xx,1\n")
		_, err := ReadCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad close")
	})

	t.Run("short rows skipped", func(t *testing.T) {
		t.Parallel()

		path := writeCSV(t, `2024-01-02T00:00:00Z,SPY,1,2,0,1,1
2024-01-03T00:00:00Z,SPY
`)
		bars, err := ReadCSV(path)
		require.NoError(t, err)
		assert.Len(t, bars, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestParquetRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bars.parquet")

	in := []Bar{
		bar("SPY", day(2), 100),
		bar("SPY", day(3), 101.5),
	}
	require.NoError(t, WriteParquet(path, in))

	out, err := ReadParquet(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[1], out[1])
}
