package dice

import "fmt"

// Sequence replays a fixed list of rolls, which makes turn outcomes fully
// scripted in tests. Rolling past the end panics.
type Sequence struct {
	rolls []Roll
	next  int
}

// NewSequence returns a roller that yields rolls in order.
func NewSequence(rolls ...Roll) *Sequence {
	return &Sequence{rolls: rolls}
}

// Pairs is a shorthand for NewSequence taking faces two at a time.
func Pairs(faces ...int) *Sequence {
	if len(faces)%2 != 0 {
		panic(fmt.Sprintf("dice.Pairs: odd number of faces (%d)", len(faces)))
	}
	rolls := make([]Roll, 0, len(faces)/2)
	for i := 0; i < len(faces); i += 2 {
		rolls = append(rolls, Roll{Die1: faces[i], Die2: faces[i+1]})
	}
	return NewSequence(rolls...)
}

// Roll returns the next scripted roll.
func (s *Sequence) Roll() Roll {
	if s.next >= len(s.rolls) {
		panic(fmt.Sprintf("dice.Sequence exhausted after %d rolls", len(s.rolls)))
	}
	r := s.rolls[s.next]
	s.next++
	return r
}

// Remaining returns how many scripted rolls are left.
func (s *Sequence) Remaining() int {
	return len(s.rolls) - s.next
}
