// Package board models the fixed, circular 40-space game board.
//
// The board is an arena of spaces addressed by Position. Movement is always
// by position arithmetic modulo the board length; names are only used to
// locate special spaces such as "Jail" and "Go To Jail", which is why
// duplicate names ("Chance", "Community Chest") are allowed.
//
// A Board is immutable once built and safe for concurrent readers.
package board

import (
	"errors"
	"fmt"
)

// Size is the number of spaces on every board.
const Size = 40

// Names of the spaces the turn engine treats specially.
const (
	GoName       = "Go"
	JailName     = "Jail"
	GoToJailName = "Go To Jail"
)

var (
	// ErrNotFound is returned when a named space is not on the board.
	ErrNotFound = errors.New("space not found")

	// ErrInvalidArgument is returned for caller contract violations such as
	// negative step counts or out of range positions.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Position is an index into the board, 0 being Start.
type Position int

// Unplaced marks a player that has not been put on the board yet.
const Unplaced Position = -1

// Space is a single named square with an optional purchase price.
type Space struct {
	Name  string
	Price *int // nil for spaces that cannot be bought
}

// Purchasable reports whether the space carries a purchase price.
func (s Space) Purchasable() bool {
	return s.Price != nil
}

// Board is the ordered, circular sequence of spaces.
type Board struct {
	spaces [Size]Space
}

// New builds a board from exactly Size spaces in traversal order.
// The first space must be Go and the layout must contain exactly one Jail
// and exactly one Go To Jail.
func New(spaces []Space) (*Board, error) {
	if len(spaces) != Size {
		return nil, fmt.Errorf("%w: board needs %d spaces, got %d", ErrInvalidArgument, Size, len(spaces))
	}
	if spaces[0].Name != GoName {
		return nil, fmt.Errorf("%w: first space must be %q, got %q", ErrInvalidArgument, GoName, spaces[0].Name)
	}

	b := &Board{}
	jails, traps := 0, 0
	for i, s := range spaces {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: space %d has no name", ErrInvalidArgument, i)
		}
		if s.Price != nil && *s.Price < 0 {
			return nil, fmt.Errorf("%w: space %q has negative price %d", ErrInvalidArgument, s.Name, *s.Price)
		}
		switch s.Name {
		case JailName:
			jails++
		case GoToJailName:
			traps++
		}
		if s.Price != nil {
			price := *s.Price
			s.Price = &price
		}
		b.spaces[i] = s
	}
	if jails != 1 {
		return nil, fmt.Errorf("%w: board needs exactly one %q space, got %d", ErrInvalidArgument, JailName, jails)
	}
	if traps != 1 {
		return nil, fmt.Errorf("%w: board needs exactly one %q space, got %d", ErrInvalidArgument, GoToJailName, traps)
	}
	return b, nil
}

// NewDefault returns the standard layout. It panics only if the literal
// layout table is broken.
func NewDefault() *Board {
	b, err := New(DefaultLayout())
	if err != nil {
		panic(fmt.Sprintf("default board layout: %v", err))
	}
	return b
}

// Len returns the number of spaces.
func (b *Board) Len() int {
	return Size
}

// Start returns the origin position (Go).
func (b *Board) Start() Position {
	return 0
}

// Space returns the space at pos.
func (b *Board) Space(pos Position) (Space, error) {
	if !b.valid(pos) {
		return Space{}, fmt.Errorf("%w: position %d outside board", ErrInvalidArgument, pos)
	}
	return b.spaces[pos], nil
}

// MustSpace is Space for positions already known to be on the board.
func (b *Board) MustSpace(pos Position) Space {
	s, err := b.Space(pos)
	if err != nil {
		panic(err)
	}
	return s
}

// Next returns the position one step after from.
func (b *Board) Next(from Position) (Position, error) {
	return b.Advance(from, 1)
}

// Advance returns the position reached by taking steps single steps from
// from, wrapping past the last space back to Go. Zero steps returns from.
func (b *Board) Advance(from Position, steps int) (Position, error) {
	if steps < 0 {
		return from, fmt.Errorf("%w: negative step count %d", ErrInvalidArgument, steps)
	}
	if !b.valid(from) {
		return from, fmt.Errorf("%w: position %d outside board", ErrInvalidArgument, from)
	}
	return Position((int(from) + steps) % Size), nil
}

// FindByName scans forward from Start and returns the first space named name.
func (b *Board) FindByName(name string) (Position, error) {
	pos := b.Start()
	for range Size {
		if b.spaces[pos].Name == name {
			return pos, nil
		}
		pos = Position((int(pos) + 1) % Size)
	}
	return Unplaced, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Spaces returns a copy of the layout in traversal order.
func (b *Board) Spaces() []Space {
	out := make([]Space, Size)
	copy(out, b.spaces[:])
	return out
}

// Names returns the space names in traversal order.
func (b *Board) Names() []string {
	names := make([]string, Size)
	for i, s := range b.spaces {
		names[i] = s.Name
	}
	return names
}

func (b *Board) valid(pos Position) bool {
	return pos >= 0 && int(pos) < Size
}
