package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/dice"
	"github.com/lox/monopolysim/internal/statistics"
)

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func newTestEngine(t *testing.T, roller dice.Roller) (*TurnEngine, *statistics.Collector, *eventRecorder) {
	t.Helper()
	stats := statistics.NewCollector()
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	return NewTurnEngine(board.NewDefault(), roller, stats, WithEventBus(bus)), stats, rec
}

func newTestPlayer(t *testing.T, name string) *Player {
	t.Helper()
	p, err := NewPlayer(name)
	require.NoError(t, err)
	return p
}

func placedPlayer(t *testing.T, pos board.Position) *Player {
	t.Helper()
	p := newTestPlayer(t, "Alice")
	p.Position = pos
	return p
}

func jailedPlayer(t *testing.T, jailTurns int) *Player {
	t.Helper()
	p := placedPlayer(t, 9)
	p.InJail = true
	p.JailTurns = jailTurns
	return p
}
