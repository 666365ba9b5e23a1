package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func bar(symbol string, t time.Time, close float64) Bar {
	return Bar{
		Symbol: symbol,
		Time:   t,
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 100,
	}
}

func TestSortBarsIsStable(t *testing.T) {
	t.Parallel()

	bars := []Bar{
		bar("SPY", day(3), 101),
		bar("AAPL", day(1), 50),
		bar("SPY", day(1), 100),
		bar("AAPL", day(3), 51),
	}

	SortBars(bars)

	require.Len(t, bars, 4)
	// Timestamps ascending; ties keep feed order.
	assert.Equal(t, "AAPL", bars[0].Symbol)
	assert.Equal(t, "SPY", bars[1].Symbol)
	assert.Equal(t, "SPY", bars[2].Symbol)
	assert.Equal(t, "AAPL", bars[3].Symbol)
	assert.Equal(t, day(1), bars[0].Time)
	assert.Equal(t, day(3), bars[3].Time)
}

func TestValidateBars(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		bars := []Bar{bar("SPY", day(1), 100), bar("SPY", day(2), 101)}
		assert.NoError(t, ValidateBars(bars))
	})

	t.Run("missing symbol", func(t *testing.T) {
		t.Parallel()

		bars := []Bar{bar("", day(1), 100)}
		err := ValidateBars(bars)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing symbol")
	})

	t.Run("missing timestamp", func(t *testing.T) {
		t.Parallel()

		bars := []Bar{bar("SPY", time.Time{}, 100)}
		err := ValidateBars(bars)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing timestamp")
	})

	t.Run("high below low", func(t *testing.T) {
		t.Parallel()

		b := bar("SPY", day(1), 100)
		b.High = 90
		err := ValidateBars([]Bar{b})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "below low")
	})

	t.Run("out of order", func(t *testing.T) {
		t.Parallel()

		bars := []Bar{bar("SPY", day(2), 100), bar("SPY", day(1), 99)}
		err := ValidateBars(bars)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of order")
	})

	t.Run("duplicate symbol and timestamp", func(t *testing.T) {
		t.Parallel()

		bars := []Bar{bar("SPY", day(1), 100), bar("SPY", day(1), 101)}
		err := ValidateBars(bars)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("same timestamp different symbols is fine", func(t *testing.T) {
		t.Parallel()

		bars := []Bar{bar("AAPL", day(1), 50), bar("SPY", day(1), 100)}
		assert.NoError(t, ValidateBars(bars))
	})
}
