package game

import (
	"fmt"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/dice"
)

// MaxJailTurns is the number of failed double attempts after which a jailed
// player is released and moves anyway.
const MaxJailTurns = 3

var (
	// ErrNotFound reports a named space missing from the board.
	ErrNotFound = board.ErrNotFound

	// ErrInvalidArgument reports a caller contract violation.
	ErrInvalidArgument = board.ErrInvalidArgument
)

// Recorder receives every roll and every landing the engine produces.
// *statistics.Collector satisfies it.
type Recorder interface {
	RecordLanding(spaceName string) error
	RecordDiceRoll(die1, die2 int) error
}

// TurnResult describes the outcome of one roll.
type TurnResult struct {
	Die1 int
	Die2 int
	Sum  int

	Landed   board.Space    // where the player ended, Jail after a redirect
	Position board.Position // position of Landed

	RolledDouble       bool
	ShouldContinueTurn bool // false once the player is (or stays) in jail

	SentToJail       bool
	ReleasedFromJail bool
}

// Roll returns the dice that produced the result.
func (r TurnResult) Roll() dice.Roll {
	return dice.Roll{Die1: r.Die1, Die2: r.Die2}
}

// RollsAgain reports whether the driver should give the player another roll.
func (r TurnResult) RollsAgain() bool {
	return r.RolledDouble && r.ShouldContinueTurn
}

// TurnEngine executes single rolls for a player: jail handling, movement,
// the Go To Jail redirect and statistics reporting.
type TurnEngine struct {
	board *board.Board
	dice  dice.Roller
	stats Recorder
	bus   EventBus
}

// EngineOption configures a TurnEngine.
type EngineOption func(*TurnEngine)

// WithEventBus publishes engine events on bus.
func WithEventBus(bus EventBus) EngineOption {
	return func(e *TurnEngine) {
		e.bus = bus
	}
}

// NewTurnEngine wires an engine to a board, a dice source and a recorder.
func NewTurnEngine(b *board.Board, roller dice.Roller, stats Recorder, opts ...EngineOption) *TurnEngine {
	e := &TurnEngine{
		board: b,
		dice:  roller,
		stats: stats,
		bus:   NewEventBus(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Board returns the board the engine moves players on.
func (e *TurnEngine) Board() *board.Board {
	return e.board
}

// PlayTurn rolls once for p and applies the consequences.
func (e *TurnEngine) PlayTurn(p *Player) (TurnResult, error) {
	if p == nil {
		return TurnResult{}, fmt.Errorf("%w: nil player", ErrInvalidArgument)
	}
	roll, err := e.Roll()
	if err != nil {
		return TurnResult{}, err
	}
	return e.Resolve(p, roll)
}

// Roll throws the dice and records the combination. PlayTurn calls it once
// per invocation; drivers that must inspect a roll before it is applied call
// Roll and then Resolve.
func (e *TurnEngine) Roll() (dice.Roll, error) {
	roll := e.dice.Roll()
	if err := e.stats.RecordDiceRoll(roll.Die1, roll.Die2); err != nil {
		return roll, fmt.Errorf("record roll %s: %w", roll, err)
	}
	return roll, nil
}

// Resolve applies an already recorded roll to p. An invalid roll is rejected
// before p or any subscriber sees it.
func (e *TurnEngine) Resolve(p *Player, roll dice.Roll) (TurnResult, error) {
	if p == nil {
		return TurnResult{}, fmt.Errorf("%w: nil player", ErrInvalidArgument)
	}
	if !roll.Valid() {
		return TurnResult{}, fmt.Errorf("%w: roll %s outside 1..%d", ErrInvalidArgument, roll, dice.Faces)
	}
	e.place(p)
	e.bus.Publish(NewDiceRolledEvent(p.Name, roll, p.InJail))

	result := TurnResult{
		Die1:         roll.Die1,
		Die2:         roll.Die2,
		Sum:          roll.Sum(),
		RolledDouble: roll.IsDouble(),
	}

	if p.InJail {
		if roll.IsDouble() {
			e.release(p, ReleaseRolledDouble)
		} else {
			p.JailTurns++
			if p.JailTurns < MaxJailTurns {
				result.Position = p.Position
				result.Landed = e.board.MustSpace(p.Position)
				return result, nil
			}
			e.release(p, ReleaseServedTime)
		}
		result.ReleasedFromJail = true
	}

	return e.move(p, roll.Sum(), result)
}

// SendToJail locks p up in the board's Jail and records a Jail landing.
// It fails only when the board has no Jail.
func (e *TurnEngine) SendToJail(p *Player, reason JailReason) (board.Position, error) {
	jail, err := e.board.FindByName(board.JailName)
	if err != nil {
		return board.Unplaced, fmt.Errorf("send %s to jail: %w", p.Name, err)
	}

	from := p.Position
	p.Position = jail
	p.InJail = true
	p.JailTurns = 0

	if err := e.stats.RecordLanding(board.JailName); err != nil {
		return jail, fmt.Errorf("record jail landing: %w", err)
	}
	e.bus.Publish(NewJailEnteredEvent(p.Name, from, reason))
	return jail, nil
}

func (e *TurnEngine) place(p *Player) {
	if !p.Placed() {
		p.Position = e.board.Start()
	}
}

func (e *TurnEngine) release(p *Player, reason ReleaseReason) {
	attempts := p.JailTurns
	if reason == ReleaseServedTime {
		attempts = MaxJailTurns
	}
	p.InJail = false
	p.JailTurns = 0
	e.bus.Publish(NewJailReleasedEvent(p.Name, attempts, reason))
}

func (e *TurnEngine) move(p *Player, steps int, result TurnResult) (TurnResult, error) {
	from := p.Position
	to, err := e.board.Advance(from, steps)
	if err != nil {
		return result, fmt.Errorf("move %s: %w", p.Name, err)
	}
	p.Position = to
	space := e.board.MustSpace(to)
	e.bus.Publish(NewPlayerMovedEvent(p.Name, from, to, space.Name, steps))

	if space.Name == board.GoToJailName {
		jail, err := e.SendToJail(p, JailReasonGoToJailSpace)
		if err != nil {
			return result, err
		}
		result.Position = jail
		result.Landed = e.board.MustSpace(jail)
		result.SentToJail = true
		result.ShouldContinueTurn = false
		return result, nil
	}

	if err := e.stats.RecordLanding(space.Name); err != nil {
		return result, fmt.Errorf("record landing at %d: %w", to, err)
	}
	result.Position = to
	result.Landed = space
	result.ShouldContinueTurn = true
	return result, nil
}
