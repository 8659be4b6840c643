package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowPositions bool   // Append board indices to moves
	Perspective   string // Player name rendered as "You"
}

// EventFormatter turns game events into one-line narration for turn traces
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// FormatEvent formats any event, falling back to its type name.
func (ef *EventFormatter) FormatEvent(event Event) string {
	switch e := event.(type) {
	case RoundStartedEvent:
		return ef.FormatRoundStarted(e)
	case DiceRolledEvent:
		return ef.FormatDiceRolled(e)
	case PlayerMovedEvent:
		return ef.FormatPlayerMoved(e)
	case JailEnteredEvent:
		return ef.FormatJailEntered(e)
	case JailReleasedEvent:
		return ef.FormatJailReleased(e)
	default:
		return event.EventType().String()
	}
}

// FormatRoundStarted formats the round header.
func (ef *EventFormatter) FormatRoundStarted(event RoundStartedEvent) string {
	return fmt.Sprintf("*** ROUND %d ***", event.Round)
}

// FormatDiceRolled formats a roll, flagging doubles and jail attempts.
func (ef *EventFormatter) FormatDiceRolled(event DiceRolledEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: rolls %d+%d", ef.playerName(event.Player), event.Die1, event.Die2)
	if event.Die1 == event.Die2 {
		b.WriteString(" (double)")
	}
	if event.InJail {
		b.WriteString(" from jail")
	}
	return b.String()
}

// FormatPlayerMoved formats a completed move.
func (ef *EventFormatter) FormatPlayerMoved(event PlayerMovedEvent) string {
	text := fmt.Sprintf("%s: moves %d to %s", ef.playerName(event.Player), event.Steps, event.Space)
	if event.To < event.From {
		text += ", passing Go"
	}
	if ef.opts.ShowPositions {
		text += fmt.Sprintf(" [%d -> %d]", event.From, event.To)
	}
	return text
}

// FormatJailEntered formats a player being locked up.
func (ef *EventFormatter) FormatJailEntered(event JailEnteredEvent) string {
	name := ef.playerName(event.Player)
	switch event.Reason {
	case JailReasonThreeDoubles:
		return fmt.Sprintf("%s: rolls a third double and goes to jail", name)
	case JailReasonGoToJailSpace:
		return fmt.Sprintf("%s: goes to jail", name)
	default:
		return fmt.Sprintf("%s: goes to jail (%s)", name, event.Reason)
	}
}

// FormatJailReleased formats a player leaving jail.
func (ef *EventFormatter) FormatJailReleased(event JailReleasedEvent) string {
	name := ef.playerName(event.Player)
	switch event.Reason {
	case ReleaseRolledDouble:
		return fmt.Sprintf("%s: rolls out of jail", name)
	case ReleaseServedTime:
		return fmt.Sprintf("%s: leaves jail after %d attempts", name, event.Attempts)
	default:
		return fmt.Sprintf("%s: leaves jail (%s)", name, event.Reason)
	}
}

func (ef *EventFormatter) playerName(name string) string {
	if ef.opts.Perspective != "" && name == ef.opts.Perspective {
		return "You"
	}
	return name
}

// TraceSubscriber writes every formatted event to a line sink.
type TraceSubscriber struct {
	formatter *EventFormatter
	emit      func(line string)
}

// NewTraceSubscriber creates a subscriber passing formatted lines to emit.
func NewTraceSubscriber(formatter *EventFormatter, emit func(line string)) *TraceSubscriber {
	return &TraceSubscriber{formatter: formatter, emit: emit}
}

// OnEvent formats and emits one event.
func (s *TraceSubscriber) OnEvent(event Event) {
	s.emit(s.formatter.FormatEvent(event))
}
