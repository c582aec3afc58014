package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyValueAlignment(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("TOTAL", "20,000.00")

	out := string(d.Bytes())
	expected := "TOTAL" + strings.Repeat(" ", 32-len("TOTAL")-len("20,000.00")) + "20,000.00"
	require.Contains(t, out, expected)
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "An Extremely Long Menu Item Name That Overflows", "1,500.00")

	for _, line := range splitLines(d.Bytes()) {
		require.LessOrEqual(t, len(line), 32)
	}
}

func TestWrapText(t *testing.T) {
	lines := WrapText("Deluxe Room 204 with ocean view and balcony", 16)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		require.LessOrEqual(t, len(l), 16)
	}

	require.Equal(t, []string{"short"}, WrapText("short", 16))
	require.Equal(t, []string{""}, WrapText("", 16))
}

func TestFormatMoney(t *testing.T) {
	require.Equal(t, "20,000.00", FormatMoney(20000))
	require.Equal(t, "1,276.60", FormatMoney(1276.6))
	require.Equal(t, "0.00", FormatMoney(0))
	require.Equal(t, "999.99", FormatMoney(999.99))
	require.Equal(t, "1,000,000.50", FormatMoney(1000000.5))
	require.Equal(t, "-2,500.00", FormatMoney(-2500))
}

// splitLines strips ESC/POS command bytes and splits printable output on
// line feeds. Commands in these tests are two bytes (ESC '@').
func splitLines(b []byte) []string {
	var lines []string
	var cur []byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == ESC || c == GS {
			i++ // skip the command selector byte
			continue
		}
		if c == LF {
			lines = append(lines, string(cur))
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	return lines
}
