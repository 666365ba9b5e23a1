//go:build blackbox

package blackbox

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// writeBarsCSV writes n daily bars for one symbol, with closes from gen(i).
func writeBarsCSV(t *testing.T, path, symbol string, n int, gen func(i int) float64) {
	t.Helper()

	var b strings.Builder
	b.WriteString("time,symbol,open,high,low,close,volume\n")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := gen(i)
		fmt.Fprintf(&b, "%s,%s,%.4f,%.4f,%.4f,%.4f,10000\n",
			start.AddDate(0, 0, i).Format(time.RFC3339), symbol, c, c+1, c-1, c)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}
