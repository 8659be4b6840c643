// Package statistics accumulates landing and dice-combination counts for a
// simulation run.
//
// Landing keys are exact space names. Dice keys are DicePair values with the
// smaller face first, so (2,5) and (5,2) share a counter and (3,3) has its own.
// Counters only grow; snapshots are copies and safe to hand to reporters.
package statistics

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/lox/monopolysim/internal/dice"
)

var (
	// ErrEmptyName is returned when a landing is recorded without a space name.
	ErrEmptyName = errors.New("empty space name")

	// ErrInvalidFace is returned for die faces outside 1..6.
	ErrInvalidFace = errors.New("invalid die face")
)

// DicePair is the normalized key for a dice combination.
type DicePair struct {
	Low  int
	High int
}

// NewDicePair orders the faces so that Low <= High.
func NewDicePair(die1, die2 int) DicePair {
	if die1 > die2 {
		die1, die2 = die2, die1
	}
	return DicePair{Low: die1, High: die2}
}

// Sum returns the total shown by the pair.
func (p DicePair) Sum() int {
	return p.Low + p.High
}

// IsDouble reports whether both faces match.
func (p DicePair) IsDouble() bool {
	return p.Low == p.High
}

func (p DicePair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Low, p.High)
}

// Collector counts landings per space name and rolls per dice pair.
// It is not safe for concurrent use; a run owns its collector and independent
// collectors are combined with Merge.
type Collector struct {
	landings map[string]int
	dice     map[DicePair]int

	totalLandings int
	totalRolls    int
	doubles       int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		landings: make(map[string]int),
		dice:     make(map[DicePair]int),
	}
}

// RecordLanding counts one landing on the named space.
func (c *Collector) RecordLanding(spaceName string) error {
	if spaceName == "" {
		return ErrEmptyName
	}
	c.landings[spaceName]++
	c.totalLandings++
	return nil
}

// RecordDiceRoll counts one roll under its normalized key.
func (c *Collector) RecordDiceRoll(die1, die2 int) error {
	if die1 < 1 || die1 > dice.Faces || die2 < 1 || die2 > dice.Faces {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidFace, die1, die2)
	}
	key := NewDicePair(die1, die2)
	c.dice[key]++
	c.totalRolls++
	if key.IsDouble() {
		c.doubles++
	}
	return nil
}

// LandingStats returns a snapshot of landing counts keyed by space name.
func (c *Collector) LandingStats() map[string]int {
	return maps.Clone(c.landings)
}

// DiceStats returns a snapshot of roll counts keyed by normalized pair.
func (c *Collector) DiceStats() map[DicePair]int {
	return maps.Clone(c.dice)
}

// Landings returns the count for one space name.
func (c *Collector) Landings(spaceName string) int {
	return c.landings[spaceName]
}

// Rolls returns the count for one combination, in either face order.
func (c *Collector) Rolls(die1, die2 int) int {
	return c.dice[NewDicePair(die1, die2)]
}

// TotalLandings returns the number of recorded landings.
func (c *Collector) TotalLandings() int {
	return c.totalLandings
}

// TotalRolls returns the number of recorded rolls.
func (c *Collector) TotalRolls() int {
	return c.totalRolls
}

// DoublesRatio returns the share of rolls that were doubles.
func (c *Collector) DoublesRatio() float64 {
	if c.totalRolls == 0 {
		return 0
	}
	return float64(c.doubles) / float64(c.totalRolls)
}

// SumCounts returns roll counts indexed by dice total; indexes 0 and 1 are unused.
func (c *Collector) SumCounts() [2*dice.Faces + 1]int {
	var sums [2*dice.Faces + 1]int
	for pair, n := range c.dice {
		sums[pair.Sum()] += n
	}
	return sums
}

// Merge adds every count from other into c.
func (c *Collector) Merge(other *Collector) {
	for name, n := range other.landings {
		c.landings[name] += n
	}
	for pair, n := range other.dice {
		c.dice[pair] += n
	}
	c.totalLandings += other.totalLandings
	c.totalRolls += other.totalRolls
	c.doubles += other.doubles
}

// Validate checks that the running totals agree with the per-key counters.
func (c *Collector) Validate() error {
	landings := 0
	for name, n := range c.landings {
		if n <= 0 {
			return fmt.Errorf("landing count for %q is %d", name, n)
		}
		landings += n
	}
	if landings != c.totalLandings {
		return fmt.Errorf("landing counts sum to %d, total is %d", landings, c.totalLandings)
	}

	rolls, doubles := 0, 0
	for pair, n := range c.dice {
		if pair.Low > pair.High {
			return fmt.Errorf("dice key %s is not normalized", pair)
		}
		rolls += n
		if pair.IsDouble() {
			doubles += n
		}
	}
	if rolls != c.totalRolls {
		return fmt.Errorf("dice counts sum to %d, total is %d", rolls, c.totalRolls)
	}
	if doubles != c.doubles {
		return fmt.Errorf("double counts sum to %d, tracked %d", doubles, c.doubles)
	}
	return nil
}

// LandingCount is one row of a landing snapshot.
type LandingCount struct {
	Name  string
	Count int
}

// DiceCount is one row of a dice snapshot.
type DiceCount struct {
	Pair  DicePair
	Count int
}

// LandingsInOrder returns counts for names in the given order (typically the
// board layout), skipping repeated names so shared keys appear once.
func (c *Collector) LandingsInOrder(names []string) []LandingCount {
	seen := make(map[string]bool, len(names))
	out := make([]LandingCount, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, LandingCount{Name: name, Count: c.landings[name]})
	}
	return out
}

// SortedDice returns all 21 combinations in (Low, High) order, zeros included.
func (c *Collector) SortedDice() []DiceCount {
	out := make([]DiceCount, 0, dice.Faces*(dice.Faces+1)/2)
	for low := 1; low <= dice.Faces; low++ {
		for high := low; high <= dice.Faces; high++ {
			pair := DicePair{Low: low, High: high}
			out = append(out, DiceCount{Pair: pair, Count: c.dice[pair]})
		}
	}
	return out
}

// TopLandings returns the n most landed-on spaces, ties broken by name.
func (c *Collector) TopLandings(n int) []LandingCount {
	out := make([]LandingCount, 0, len(c.landings))
	for name, count := range c.landings {
		out = append(out, LandingCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
