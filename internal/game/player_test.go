package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/monopolysim/internal/board"
)

func TestNewPlayer(t *testing.T) {
	p, err := NewPlayer("Alice")
	require.NoError(t, err)

	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, board.Unplaced, p.Position)
	assert.False(t, p.Placed())
	assert.Equal(t, StartingCash, p.Cash)
	assert.Equal(t, StartingCash, p.NetWorth())
	assert.False(t, p.InJail)
	assert.Zero(t, p.JailTurns)
	assert.Empty(t, p.Properties())

	_, err = NewPlayer("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlayerProperties(t *testing.T) {
	p, err := NewPlayer("Bob")
	require.NoError(t, err)

	assert.True(t, p.AddProperty(39))
	assert.True(t, p.AddProperty(1))
	assert.False(t, p.AddProperty(39))
	assert.True(t, p.Owns(1))
	assert.Equal(t, []board.Position{1, 39}, p.Properties())

	assert.True(t, p.RemoveProperty(1))
	assert.False(t, p.RemoveProperty(1))
	assert.False(t, p.Owns(1))
	assert.Equal(t, []board.Position{39}, p.Properties())

	var zero Player
	assert.True(t, zero.AddProperty(5))
}

func TestPlayerString(t *testing.T) {
	p := placedPlayer(t, 9)
	assert.Equal(t, "Alice@9", p.String())
	p.InJail = true
	p.JailTurns = 2
	assert.Equal(t, "Alice@9 (jail 2)", p.String())
}
