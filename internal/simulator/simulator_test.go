package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Rounds:  25,
		Players: []string{"Alice", "Bob", "Carol"},
		Runs:    4,
		Workers: 2,
		Seed:    42,
		Logger:  quietLogger(),
		Clock:   quartz.NewMock(t),
	}
}

func TestNew_RejectsZeroRuns(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Runs = 0
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	sim, err := New(Config{Rounds: 1, Players: []string{"A"}, Runs: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, sim.config.Workers)
	assert.NotNil(t, sim.config.Board)
	assert.NotNil(t, sim.config.Clock)
}

func TestRun_AggregatesAllRuns(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	sim, err := New(cfg)
	require.NoError(t, err)

	report, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Runs, cfg.Runs)

	var rolls, landings int
	for i, run := range report.Runs {
		assert.Equal(t, i, run.Index)
		assert.Equal(t, cfg.Seed+int64(i), run.Seed)
		require.NotNil(t, run.Stats)
		// Every turn rolls at least once per player per round.
		assert.GreaterOrEqual(t, run.Stats.TotalRolls(), cfg.Rounds*len(cfg.Players))
		rolls += run.Stats.TotalRolls()
		landings += run.Stats.TotalLandings()
	}
	assert.Equal(t, rolls, report.Total.TotalRolls())
	assert.Equal(t, landings, report.Total.TotalLandings())
	require.NoError(t, report.Total.Validate())
}

func TestRun_UniqueRunIDs(t *testing.T) {
	t.Parallel()

	sim, err := New(testConfig(t))
	require.NoError(t, err)
	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, snap := range report.Snapshots() {
		assert.False(t, seen[snap.RunID], "duplicate run id %s", snap.RunID)
		seen[snap.RunID] = true
	}
	assert.Len(t, seen, len(report.Runs))
}

func TestRun_ReproducibleAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	serial := testConfig(t)
	serial.Workers = 1
	parallel := testConfig(t)
	parallel.Workers = 4

	a, err := New(serial)
	require.NoError(t, err)
	b, err := New(parallel)
	require.NoError(t, err)

	ra, err := a.Run(context.Background())
	require.NoError(t, err)
	rb, err := b.Run(context.Background())
	require.NoError(t, err)

	for i := range ra.Runs {
		assert.Equal(t, ra.Runs[i].Stats.LandingStats(), rb.Runs[i].Stats.LandingStats(), "run %d", i)
		assert.Equal(t, ra.Runs[i].Stats.DiceStats(), rb.Runs[i].Stats.DiceStats(), "run %d", i)
	}
	assert.Equal(t, ra.Total.LandingStats(), rb.Total.LandingStats())
}

func TestRun_MockClockElapsed(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	sim, err := New(cfg)
	require.NoError(t, err)

	report, err := sim.Run(context.Background())
	require.NoError(t, err)
	// The mock clock never advances on its own.
	assert.Zero(t, report.Elapsed)
	for _, run := range report.Runs {
		assert.Zero(t, run.Duration)
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim, err := New(testConfig(t))
	require.NoError(t, err)
	_, err = sim.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidPlayersFail(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Players = []string{"Alice", "Alice"}
	sim, err := New(cfg)
	require.NoError(t, err)

	_, err = sim.Run(context.Background())
	require.ErrorIs(t, err, game.ErrInvalidArgument)
}

func TestRun_CustomBoard(t *testing.T) {
	t.Parallel()

	layout := board.DefaultLayout()
	layout[1].Name = "Old Kent Road"
	b, err := board.New(layout)
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Board = b
	cfg.Rounds = 200
	sim, err := New(cfg)
	require.NoError(t, err)

	report, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, b, report.Board)
	assert.Zero(t, report.Total.Landings("Mediterranean Avenue"))
	assert.Positive(t, report.Total.Landings("Old Kent Road"))
}

func TestReport_SnapshotsCarryGameContext(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	clock := quartz.NewMock(t)
	cfg.Clock = clock

	sim, err := New(cfg)
	require.NoError(t, err)
	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	snaps := report.Snapshots()
	require.Len(t, snaps, cfg.Runs)
	for i, snap := range snaps {
		assert.Equal(t, report.Runs[i].ID.String(), snap.RunID)
		assert.Equal(t, cfg.Rounds, snap.Rounds)
		assert.Equal(t, len(cfg.Players), snap.Players)
		assert.Equal(t, clock.Now(), snap.Timestamp)
		assert.Same(t, report.Runs[i].Stats, snap.Collector)
	}
}
