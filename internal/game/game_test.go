package game

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/dice"
	"github.com/lox/monopolysim/internal/statistics"
)

func newTestGame(t *testing.T, roller dice.Roller, rounds int, players ...string) (*Game, *eventRecorder) {
	t.Helper()
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	g, err := New(Config{
		Rounds:  rounds,
		Players: players,
		Dice:    roller,
		Bus:     bus,
		Logger:  log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel}),
	})
	require.NoError(t, err)
	return g, rec
}

func TestNew_Validation(t *testing.T) {
	roller := dice.Pairs()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no rounds", Config{Rounds: 0, Players: []string{"A"}, Dice: roller}},
		{"no players", Config{Rounds: 1, Dice: roller}},
		{"empty name", Config{Rounds: 1, Players: []string{"A", ""}, Dice: roller}},
		{"duplicate name", Config{Rounds: 1, Players: []string{"A", "A"}, Dice: roller}},
		{"no dice", Config{Rounds: 1, Players: []string{"A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNew_PlacesPlayersOnStart(t *testing.T) {
	g, _ := newTestGame(t, dice.Pairs(), 1, "Alice", "Bob")

	require.Len(t, g.Players(), 2)
	for _, p := range g.Players() {
		assert.Equal(t, board.Position(0), p.Position)
		assert.Equal(t, StartingCash, p.Cash)
		assert.False(t, p.InJail)
	}
	assert.NotNil(t, g.Stats())
}

func TestTakeTurn_SingleRoll(t *testing.T) {
	g, _ := newTestGame(t, dice.Pairs(3, 4), 1, "Alice")
	p := g.Players()[0]

	results, err := g.TakeTurn(p)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Vermont Avenue", results[0].Landed.Name)
}

func TestTakeTurn_DoublesChain(t *testing.T) {
	g, _ := newTestGame(t, dice.Pairs(1, 1, 2, 2, 3, 4), 1, "Alice")
	p := g.Players()[0]

	results, err := g.TakeTurn(p)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, board.Position(2+4+7), p.Position)
	assert.False(t, p.InJail)
	assert.Equal(t, 3, g.Stats().TotalLandings())
}

func TestTakeTurn_ThirdDoubleGoesToJailWithoutMoving(t *testing.T) {
	g, events := newTestGame(t, dice.Pairs(1, 1, 2, 2, 3, 3), 1, "Alice")
	p := g.Players()[0]

	results, err := g.TakeTurn(p)
	require.NoError(t, err)
	require.Len(t, results, 3)

	last := results[2]
	assert.True(t, last.SentToJail)
	assert.True(t, last.RolledDouble)
	assert.False(t, last.ShouldContinueTurn)
	assert.Equal(t, board.JailName, last.Landed.Name)

	assert.True(t, p.InJail)
	assert.Zero(t, p.JailTurns)
	assert.Equal(t, board.Position(9), p.Position)

	stats := g.Stats()
	assert.Equal(t, 3, stats.TotalRolls(), "third double is still counted")
	assert.Equal(t, 1, stats.Rolls(3, 3))
	assert.Equal(t, 1, stats.Landings(board.JailName))
	assert.Zero(t, stats.Landings("States Avenue"), "third double must not move the player")
	assert.Equal(t, 3, stats.TotalLandings())

	var reasons []JailReason
	for _, e := range events.events {
		if je, ok := e.(JailEnteredEvent); ok {
			reasons = append(reasons, je.Reason)
		}
	}
	assert.Equal(t, []JailReason{JailReasonThreeDoubles}, reasons)
}

func TestTakeTurn_GoToJailEndsChain(t *testing.T) {
	// 4+4 then 5+5 reaches 18; 6+5 reaches 29.
	g, _ := newTestGame(t, dice.Pairs(4, 4, 5, 5, 6, 5), 1, "Alice")
	p := g.Players()[0]

	results, err := g.TakeTurn(p)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[2].SentToJail)
	assert.True(t, p.InJail)
}

func TestTakeTurn_JailReleaseDoubleNotInStreak(t *testing.T) {
	// Release with 1+1, then two more doubles and a plain roll: the release
	// double does not count, so no trip back to jail.
	g, _ := newTestGame(t, dice.Pairs(1, 1, 2, 2, 1, 1, 1, 2), 1, "Alice")
	p := g.Players()[0]
	p.Position = 9
	p.InJail = true

	results, err := g.TakeTurn(p)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.True(t, results[0].ReleasedFromJail)
	assert.False(t, p.InJail)
	assert.Equal(t, board.Position(9+2+4+2+3), p.Position)
}

func TestTakeTurn_StayInJail(t *testing.T) {
	g, _ := newTestGame(t, dice.Pairs(1, 2), 1, "Alice")
	p := g.Players()[0]
	p.Position = 9
	p.InJail = true

	results, err := g.TakeTurn(p)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, p.InJail)
	assert.Equal(t, 1, p.JailTurns)
}

func TestRun_AllRoundsAllPlayers(t *testing.T) {
	g, events := newTestGame(t, dice.NewSeeded(99), 50, "Alice", "Bob", "Carol")

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 50, g.RoundsPlayed())

	stats := g.Stats()
	require.NoError(t, stats.Validate())
	assert.GreaterOrEqual(t, stats.TotalRolls(), 150)
	assert.Zero(t, stats.Landings(board.GoToJailName))

	rounds := 0
	for _, e := range events.events {
		if e.EventType() == EventTypeRoundStarted {
			rounds++
		}
	}
	assert.Equal(t, 50, rounds)

	for _, p := range g.Players() {
		assert.True(t, p.Placed())
		assert.Less(t, p.JailTurns, MaxJailTurns)
	}
}

func TestRun_IsReproducible(t *testing.T) {
	run := func() map[string]int {
		g, _ := newTestGame(t, dice.NewSeeded(1234), 25, "Alice", "Bob")
		require.NoError(t, g.Run(context.Background()))
		return g.Stats().LandingStats()
	}
	assert.Equal(t, run(), run())
}

func TestRun_Cancelled(t *testing.T) {
	g, _ := newTestGame(t, dice.NewSeeded(5), 10, "Alice")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.RoundsPlayed())
}

func TestRun_ResumesAfterMidRoundCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	bus.Subscribe(SubscriberFunc(func(e Event) {
		if moved, ok := e.(PlayerMovedEvent); ok && moved.Player == "Alice" {
			cancel()
		}
	}))

	// Exactly four rolls: replaying Alice would exhaust the sequence.
	g, err := New(Config{
		Rounds:  2,
		Players: []string{"Alice", "Bob"},
		Dice:    dice.Pairs(1, 2, 1, 2, 1, 2, 1, 2),
		Bus:     bus,
	})
	require.NoError(t, err)

	require.ErrorIs(t, g.Run(ctx), context.Canceled)
	assert.Zero(t, g.RoundsPlayed())
	assert.Equal(t, board.Position(3), g.Players()[0].Position)
	assert.Equal(t, board.Position(0), g.Players()[1].Position)

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 2, g.RoundsPlayed())
	for _, p := range g.Players() {
		assert.Equal(t, board.Position(6), p.Position, p.Name)
	}
	assert.Equal(t, 4, g.Stats().TotalRolls())

	rounds := 0
	for _, e := range rec.events {
		if e.EventType() == EventTypeRoundStarted {
			rounds++
		}
	}
	assert.Equal(t, 2, rounds)
}

func TestRun_SharedCollector(t *testing.T) {
	stats := statistics.NewCollector()
	g, err := New(Config{Rounds: 3, Players: []string{"Alice"}, Dice: dice.Pairs(1, 2, 1, 2, 1, 2), Stats: stats})
	require.NoError(t, err)

	require.NoError(t, g.Run(context.Background()))
	assert.Same(t, stats, g.Stats())
	assert.Equal(t, 3, stats.TotalRolls())
	assert.Equal(t, 1, stats.Landings("Baltic Avenue"))
	assert.Equal(t, 1, stats.Landings("Oriental Avenue"))
	assert.Equal(t, 1, stats.Landings(board.JailName))
}
