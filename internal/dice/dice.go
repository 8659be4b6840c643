// Package dice provides the two-die random source used by the turn engine.
package dice

import (
	"fmt"
	rand "math/rand/v2"
)

// Faces is the number of sides on each die.
const Faces = 6

// Roll is the outcome of throwing both dice once.
type Roll struct {
	Die1 int
	Die2 int
}

// Sum returns the total of both faces.
func (r Roll) Sum() int {
	return r.Die1 + r.Die2
}

// IsDouble reports whether both faces match.
func (r Roll) IsDouble() bool {
	return r.Die1 == r.Die2
}

// Valid reports whether both faces are in 1..Faces.
func (r Roll) Valid() bool {
	return r.Die1 >= 1 && r.Die1 <= Faces && r.Die2 >= 1 && r.Die2 <= Faces
}

func (r Roll) String() string {
	return fmt.Sprintf("%d+%d", r.Die1, r.Die2)
}

// Roller produces dice rolls. Implementations are not required to be safe
// for concurrent use; each game owns its own Roller.
type Roller interface {
	Roll() Roll
}

// Dice rolls two fair dice from an injected random source.
type Dice struct {
	rng *rand.Rand
}

// New returns dice drawing from rng.
func New(rng *rand.Rand) *Dice {
	return &Dice{rng: rng}
}

// NewSeeded returns dice with a deterministic source derived from seed.
func NewSeeded(seed int64) *Dice {
	return New(NewRand(seed))
}

// Roll draws two independent faces uniformly from 1..Faces.
func (d *Dice) Roll() Roll {
	return Roll{
		Die1: d.rng.IntN(Faces) + 1,
		Die2: d.rng.IntN(Faces) + 1,
	}
}
