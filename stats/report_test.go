package stats_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/stats"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	t.Run("it writes one aligned row per identity in input order", func(t *testing.T) {
		t.Parallel()

		// Arrange
		schedule := stats.DefaultSchedule()
		rows := []stats.IdentityStats{
			schedule.Evaluate("LongIdentityName111", stats.FetchResult{Samples: []stats.Sample{
				{Epoch: 796, Stake: 2_000_000_000},
				{Epoch: 824, Stake: 4_000_000_000},
			}}),
			schedule.Evaluate("short", stats.FetchResult{}),
		}
		var buf bytes.Buffer

		// Act
		err := stats.WriteReport(&buf, schedule, rows)

		// Assert
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 6, "border, header, border, two rows, border")

		for _, line := range lines {
			assert.Len(t, line, len(lines[0]), "every line has the same width")
		}

		assert.Contains(t, lines[1], "G1 avg")
		assert.Contains(t, lines[1], "G1->G2 %")
		assert.Contains(t, lines[3], "LongIdentityName111")
		assert.Contains(t, lines[3], "0.666667")
		assert.Contains(t, lines[3], "-100.00%")
		assert.Contains(t, lines[3], "+100.00%")
		assert.True(t, strings.HasPrefix(lines[4], "| short "))
		assert.Equal(t, 3, strings.Count(lines[4], stats.NotAvailable))
	})

	t.Run("it writes only the header without rows", func(t *testing.T) {
		t.Parallel()

		// Arrange
		var buf bytes.Buffer

		// Act
		err := stats.WriteReport(&buf, stats.DefaultSchedule(), nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
	})
}

func TestFormatGrowth(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		from, to float64
		expected string
	}{
		{name: "increase", from: 1, to: 1.5, expected: "+50.00%"},
		{name: "decrease", from: 2, to: 1, expected: "-50.00%"},
		{name: "unchanged", from: 3, to: 3, expected: "+0.00%"},
		{name: "no baseline", from: 0, to: 3, expected: "n/a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Act
			got := stats.FormatGrowth(stats.NewGrowth(tc.from, tc.to))

			// Assert
			assert.Equal(t, tc.expected, got)
		})
	}
}
