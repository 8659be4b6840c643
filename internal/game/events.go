package game

import (
	"reflect"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/dice"
)

// EventType identifies a game event.
type EventType string

const (
	EventTypeRoundStarted EventType = "round_started"
	EventTypeDiceRolled   EventType = "dice_rolled"
	EventTypePlayerMoved  EventType = "player_moved"
	EventTypeJailEntered  EventType = "jail_entered"
	EventTypeJailReleased EventType = "jail_released"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything published on the EventBus.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// JailReason says why a player went to jail.
type JailReason string

const (
	JailReasonGoToJailSpace JailReason = "go_to_jail_space"
	JailReasonThreeDoubles  JailReason = "three_doubles"
)

// ReleaseReason says how a player got out of jail.
type ReleaseReason string

const (
	ReleaseRolledDouble ReleaseReason = "rolled_double"
	ReleaseServedTime   ReleaseReason = "served_time"
)

// RoundStartedEvent is published by the driver before each round.
type RoundStartedEvent struct {
	Round     int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartedEvent creates a round started event
func NewRoundStartedEvent(round int) RoundStartedEvent {
	return RoundStartedEvent{Round: round, timestamp: time.Now()}
}

// DiceRolledEvent is published when a player's roll is applied, before any
// movement it causes.
type DiceRolledEvent struct {
	Player    string
	Die1      int
	Die2      int
	InJail    bool // rolled as a jail release attempt
	timestamp time.Time
}

func (e DiceRolledEvent) EventType() EventType { return EventTypeDiceRolled }
func (e DiceRolledEvent) Timestamp() time.Time { return e.timestamp }

// NewDiceRolledEvent creates a dice rolled event
func NewDiceRolledEvent(player string, roll dice.Roll, inJail bool) DiceRolledEvent {
	return DiceRolledEvent{
		Player:    player,
		Die1:      roll.Die1,
		Die2:      roll.Die2,
		InJail:    inJail,
		timestamp: time.Now(),
	}
}

// PlayerMovedEvent is published for every completed move, including one that
// ends on Go To Jail.
type PlayerMovedEvent struct {
	Player    string
	From      board.Position
	To        board.Position
	Space     string
	Steps     int
	timestamp time.Time
}

func (e PlayerMovedEvent) EventType() EventType { return EventTypePlayerMoved }
func (e PlayerMovedEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerMovedEvent creates a player moved event
func NewPlayerMovedEvent(player string, from, to board.Position, space string, steps int) PlayerMovedEvent {
	return PlayerMovedEvent{
		Player:    player,
		From:      from,
		To:        to,
		Space:     space,
		Steps:     steps,
		timestamp: time.Now(),
	}
}

// JailEnteredEvent is published when a player is locked up.
type JailEnteredEvent struct {
	Player    string
	From      board.Position
	Reason    JailReason
	timestamp time.Time
}

func (e JailEnteredEvent) EventType() EventType { return EventTypeJailEntered }
func (e JailEnteredEvent) Timestamp() time.Time { return e.timestamp }

// NewJailEnteredEvent creates a jail entered event
func NewJailEnteredEvent(player string, from board.Position, reason JailReason) JailEnteredEvent {
	return JailEnteredEvent{Player: player, From: from, Reason: reason, timestamp: time.Now()}
}

// JailReleasedEvent is published when a player leaves jail.
type JailReleasedEvent struct {
	Player    string
	Attempts  int // failed attempts before release
	Reason    ReleaseReason
	timestamp time.Time
}

func (e JailReleasedEvent) EventType() EventType { return EventTypeJailReleased }
func (e JailReleasedEvent) Timestamp() time.Time { return e.timestamp }

// NewJailReleasedEvent creates a jail released event
func NewJailReleasedEvent(player string, attempts int, reason ReleaseReason) JailReleasedEvent {
	return JailReleasedEvent{Player: player, Attempts: attempts, Reason: reason, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(Event)

// OnEvent calls f.
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Subscribers of uncomparable types, such
// as SubscriberFunc, cannot be matched and are left in place; wrap them in a
// pointer type to make them removable.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if subscriber == nil || !reflect.TypeOf(subscriber).Comparable() {
		return
	}
	for i, s := range bus.subscribers {
		if s == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// LogSubscriber writes events to a logger at debug level.
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber returns a subscriber logging through logger.
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger.WithPrefix("events")}
}

// OnEvent logs one event.
func (l *LogSubscriber) OnEvent(event Event) {
	switch e := event.(type) {
	case RoundStartedEvent:
		l.logger.Debug("Round started", "round", e.Round)
	case DiceRolledEvent:
		l.logger.Debug("Dice rolled", "player", e.Player, "die1", e.Die1, "die2", e.Die2, "in_jail", e.InJail)
	case PlayerMovedEvent:
		l.logger.Debug("Player moved", "player", e.Player, "steps", e.Steps, "from", int(e.From), "to", int(e.To), "space", e.Space)
	case JailEnteredEvent:
		l.logger.Debug("Player sent to jail", "player", e.Player, "reason", e.Reason)
	case JailReleasedEvent:
		l.logger.Debug("Player released from jail", "player", e.Player, "reason", e.Reason, "attempts", e.Attempts)
	default:
		l.logger.Debug("Event", "type", event.EventType())
	}
}
