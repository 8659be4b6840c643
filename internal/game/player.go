package game

import (
	"fmt"
	"slices"

	"github.com/lox/monopolysim/internal/board"
)

// StartingCash is the balance every player begins with.
const StartingCash = 1500

// Player is the mutable per-participant state. Position and jail fields are
// owned by the TurnEngine; owned properties by whatever handles purchases.
type Player struct {
	Name      string
	Position  board.Position
	Cash      int
	InJail    bool
	JailTurns int // failed attempts to roll out of jail, 0..MaxJailTurns-1 between turns

	properties map[board.Position]struct{}
}

// NewPlayer returns an unplaced player with the starting balance.
func NewPlayer(name string) (*Player, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: player name is empty", ErrInvalidArgument)
	}
	return &Player{
		Name:       name,
		Position:   board.Unplaced,
		Cash:       StartingCash,
		properties: make(map[board.Position]struct{}),
	}, nil
}

// Placed reports whether the player has been put on the board.
func (p *Player) Placed() bool {
	return p.Position != board.Unplaced
}

// AddProperty records ownership of the space at pos. It returns false if the
// player already owns it.
func (p *Player) AddProperty(pos board.Position) bool {
	if p.properties == nil {
		p.properties = make(map[board.Position]struct{})
	}
	if _, ok := p.properties[pos]; ok {
		return false
	}
	p.properties[pos] = struct{}{}
	return true
}

// RemoveProperty drops ownership of pos, returning false if it was not owned.
func (p *Player) RemoveProperty(pos board.Position) bool {
	if _, ok := p.properties[pos]; !ok {
		return false
	}
	delete(p.properties, pos)
	return true
}

// Owns reports whether the player owns the space at pos.
func (p *Player) Owns(pos board.Position) bool {
	_, ok := p.properties[pos]
	return ok
}

// Properties returns owned positions in board order.
func (p *Player) Properties() []board.Position {
	out := make([]board.Position, 0, len(p.properties))
	for pos := range p.properties {
		out = append(out, pos)
	}
	slices.Sort(out)
	return out
}

// NetWorth is the player's cash. Property values are not counted.
func (p *Player) NetWorth() int {
	return p.Cash
}

func (p *Player) String() string {
	if p.InJail {
		return fmt.Sprintf("%s@%d (jail %d)", p.Name, p.Position, p.JailTurns)
	}
	return fmt.Sprintf("%s@%d", p.Name, p.Position)
}
