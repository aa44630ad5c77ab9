package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/stats"
)

const tolerance = 1e-9

func TestScheduleProject(t *testing.T) {
	t.Parallel()

	t.Run("it yields exactly one ascending entry per tracked epoch", func(t *testing.T) {
		t.Parallel()

		// Arrange
		schedule := stats.DefaultSchedule()
		samples := []stats.Sample{
			{Epoch: 900, Stake: 7_000_000_000},
			{Epoch: 796, Stake: 2_000_000_000},
			{Epoch: 1, Stake: 1},
		}

		// Act
		projected := schedule.Project(samples)

		// Assert
		require.Len(t, projected, 9)
		for i, p := range projected {
			assert.Equal(t, schedule.Epochs()[i], p.Epoch)
		}
	})

	t.Run("it substitutes exactly zero for missing epochs and rescales present ones", func(t *testing.T) {
		t.Parallel()

		// Arrange
		schedule := mustSchedule(t, []uint64{10, 11, 12}, stats.Group{Name: "all", Epochs: []uint64{10, 11, 12}})
		samples := []stats.Sample{{Epoch: 11, Stake: 1_500_000_001}}

		// Act
		projected := schedule.Project(samples)

		// Assert
		assert.Equal(t, []stats.EpochStake{
			{Epoch: 10, Stake: 0},
			{Epoch: 11, Stake: 1.500000001},
			{Epoch: 12, Stake: 0},
		}, projected)
	})

	t.Run("it takes the first sample when an epoch repeats", func(t *testing.T) {
		t.Parallel()

		// Arrange
		schedule := mustSchedule(t, []uint64{5}, stats.Group{Name: "g", Epochs: []uint64{5}})
		samples := []stats.Sample{
			{Epoch: 5, Stake: 3_000_000_000},
			{Epoch: 5, Stake: 9_000_000_000},
		}

		// Act
		projected := schedule.Project(samples)

		// Assert
		require.Len(t, projected, 1)
		assert.InDelta(t, 3.0, projected[0].Stake, tolerance)
	})
}

func TestGroupAverage(t *testing.T) {
	t.Parallel()

	projected := []stats.EpochStake{{Epoch: 1, Stake: 1}, {Epoch: 2, Stake: 2}, {Epoch: 3, Stake: 6}}

	testCases := []struct {
		name     string
		group    stats.Group
		expected float64
	}{
		{name: "unweighted mean of members", group: stats.Group{Name: "a", Epochs: []uint64{1, 2, 3}}, expected: 3},
		{name: "subset of epochs", group: stats.Group{Name: "b", Epochs: []uint64{1, 2}}, expected: 1.5},
		{name: "absent epoch counts as zero", group: stats.Group{Name: "c", Epochs: []uint64{3, 99}}, expected: 3},
		{name: "empty group averages zero", group: stats.Group{Name: "d"}, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Act
			avg := stats.GroupAverage(projected, tc.group)

			// Assert
			assert.InDelta(t, tc.expected, avg, tolerance)
		})
	}
}

func TestNewGrowth(t *testing.T) {
	t.Parallel()

	t.Run("it computes absolute and relative change", func(t *testing.T) {
		t.Parallel()

		// Act
		g := stats.NewGrowth(2, 3)

		// Assert
		assert.InDelta(t, 1.0, g.Absolute, tolerance)
		rel, ok := g.Relative()
		require.True(t, ok)
		assert.InDelta(t, 0.5, rel, tolerance)
		pct, ok := g.Percent()
		require.True(t, ok)
		assert.InDelta(t, 50.0, pct, tolerance)
	})

	t.Run("it has no baseline exactly when from is zero", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			from float64
			to   float64
			ok   bool
		}{
			{name: "zero to positive", from: 0, to: 5, ok: false},
			{name: "zero to negative", from: 0, to: -5, ok: false},
			{name: "zero to zero", from: 0, to: 0, ok: false},
			{name: "positive to zero", from: 4, to: 0, ok: true},
			{name: "negative delta", from: 4, to: 1, ok: true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				// Act
				g := stats.NewGrowth(tc.from, tc.to)

				// Assert
				_, ok := g.Relative()
				assert.Equal(t, tc.ok, ok)
				assert.Equal(t, tc.ok, g.HasBaseline())
				assert.InDelta(t, tc.to-tc.from, g.Absolute, tolerance)
			})
		}
	})
}

func TestScheduleEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("scenario: sparse samples across three groups", func(t *testing.T) {
		t.Parallel()

		// Arrange
		schedule := stats.DefaultSchedule()
		fetched := stats.FetchResult{Samples: []stats.Sample{
			{Epoch: 796, Stake: 2_000_000_000},
			{Epoch: 824, Stake: 4_000_000_000},
		}}

		// Act
		result := schedule.Evaluate("id", fetched)

		// Assert
		require.Len(t, result.Averages, 3)
		assert.InDelta(t, 2.0/3.0, result.Averages[0], tolerance)
		assert.InDelta(t, 0.0, result.Averages[1], tolerance)
		assert.InDelta(t, 4.0/3.0, result.Averages[2], tolerance)

		require.Len(t, result.Growths, 3)
		g1g2, ok := result.Growths[0].Percent()
		require.True(t, ok, "G1->G2 has a non-zero baseline")
		assert.InDelta(t, -100.0, g1g2, 1e-6)

		_, ok = result.Growths[1].Percent()
		assert.False(t, ok, "G2->G3 has a zero baseline")

		g1g3, ok := result.Growths[2].Percent()
		require.True(t, ok)
		assert.InDelta(t, 100.0, g1g3, 1e-6)

		assert.Equal(t, []string{"id", "0.666667", "0.000000", "1.333333", "-100.00%", "n/a", "+100.00%"}, stats.ReportRow(result))
	})

	t.Run("scenario: no samples at all", func(t *testing.T) {
		t.Parallel()

		// Arrange
		schedule := stats.DefaultSchedule()

		// Act
		result := schedule.Evaluate("id", stats.FetchResult{Status: stats.FetchFailed})

		// Assert
		assert.Equal(t, stats.FetchFailed, result.Fetch)
		for _, avg := range result.Averages {
			assert.Zero(t, avg)
		}
		for _, g := range result.Growths {
			assert.False(t, g.HasBaseline())
		}
		assert.Equal(t, []string{"id", "0.000000", "0.000000", "0.000000", "n/a", "n/a", "n/a"}, stats.ReportRow(result))
	})
}

func mustSchedule(t *testing.T, epochs []uint64, groups ...stats.Group) stats.Schedule {
	t.Helper()

	s, err := stats.NewSchedule(epochs, groups)
	require.NoError(t, err)
	return s
}
