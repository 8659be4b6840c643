package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/dice"
	"github.com/lox/monopolysim/internal/statistics"
)

// MaxConsecutiveDoubles is the streak length that sends a player to jail
// instead of moving.
const MaxConsecutiveDoubles = 3

// Config describes one game.
type Config struct {
	Rounds  int
	Players []string
	Board   *board.Board          // defaults to board.NewDefault()
	Dice    dice.Roller           // required
	Stats   *statistics.Collector // defaults to a fresh collector
	Bus     EventBus              // defaults to a private bus
	Logger  *log.Logger           // optional; events are logged at debug level
}

// Game is the round/player driver around a TurnEngine. It owns its players,
// collector and engine; none of them are shared with other games.
type Game struct {
	rounds  int
	players []*Player
	engine  *TurnEngine
	stats   *statistics.Collector
	bus     EventBus
	logger  *log.Logger
	played  int // completed rounds
	turn    int // index of the next player in round played+1
}

// New validates cfg and places every player on Start.
func New(cfg Config) (*Game, error) {
	if cfg.Rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidArgument, cfg.Rounds)
	}
	if len(cfg.Players) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", ErrInvalidArgument)
	}
	if cfg.Dice == nil {
		return nil, fmt.Errorf("%w: dice source is required", ErrInvalidArgument)
	}
	if cfg.Board == nil {
		cfg.Board = board.NewDefault()
	}
	if cfg.Stats == nil {
		cfg.Stats = statistics.NewCollector()
	}
	if cfg.Bus == nil {
		cfg.Bus = NewEventBus()
	}

	g := &Game{
		rounds: cfg.Rounds,
		engine: NewTurnEngine(cfg.Board, cfg.Dice, cfg.Stats, WithEventBus(cfg.Bus)),
		stats:  cfg.Stats,
		bus:    cfg.Bus,
	}
	if cfg.Logger != nil {
		g.logger = cfg.Logger.WithPrefix("game")
		g.bus.Subscribe(NewLogSubscriber(cfg.Logger))
	}

	seen := make(map[string]bool, len(cfg.Players))
	for _, name := range cfg.Players {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidArgument, name)
		}
		seen[name] = true

		p, err := NewPlayer(name)
		if err != nil {
			return nil, err
		}
		p.Position = cfg.Board.Start()
		g.players = append(g.players, p)
	}
	return g, nil
}

// Players returns the players in turn order.
func (g *Game) Players() []*Player {
	return g.players
}

// Engine returns the game's turn engine.
func (g *Game) Engine() *TurnEngine {
	return g.engine
}

// Stats returns the game's collector.
func (g *Game) Stats() *statistics.Collector {
	return g.stats
}

// RoundsPlayed returns how many rounds have completed.
func (g *Game) RoundsPlayed() int {
	return g.played
}

// Run plays every configured round. Cancellation is checked between turns;
// a later Run resumes with the next player who has not moved.
func (g *Game) Run(ctx context.Context) error {
	for round := g.played + 1; round <= g.rounds; round++ {
		if g.turn == 0 {
			g.bus.Publish(NewRoundStartedEvent(round))
		}
		for g.turn < len(g.players) {
			p := g.players[g.turn]
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("round %d: %w", round, err)
			}
			if _, err := g.TakeTurn(p); err != nil {
				return fmt.Errorf("round %d, player %s: %w", round, p.Name, err)
			}
			g.turn++
		}
		g.turn = 0
		g.played = round
	}
	if g.logger != nil {
		g.logger.Debug("Game finished", "rounds", g.played, "rolls", g.stats.TotalRolls())
	}
	return nil
}

// TakeTurn plays p's full turn: the first roll plus any extra rolls earned by
// doubles. A third consecutive double sends p straight to jail without
// moving. The double that releases a player from jail does not count towards
// the streak.
func (g *Game) TakeTurn(p *Player) ([]TurnResult, error) {
	var results []TurnResult
	streak := 0
	for {
		roll, err := g.engine.Roll()
		if err != nil {
			return results, err
		}

		if !p.InJail && roll.IsDouble() && streak == MaxConsecutiveDoubles-1 {
			result, err := g.jailForDoubles(p, roll)
			if err != nil {
				return results, err
			}
			return append(results, result), nil
		}

		result, err := g.engine.Resolve(p, roll)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if !result.RollsAgain() {
			return results, nil
		}
		if !result.ReleasedFromJail {
			streak++
		}
	}
}

func (g *Game) jailForDoubles(p *Player, roll dice.Roll) (TurnResult, error) {
	g.bus.Publish(NewDiceRolledEvent(p.Name, roll, false))
	jail, err := g.engine.SendToJail(p, JailReasonThreeDoubles)
	if err != nil {
		return TurnResult{}, err
	}
	return TurnResult{
		Die1:         roll.Die1,
		Die2:         roll.Die2,
		Sum:          roll.Sum(),
		Landed:       g.engine.Board().MustSpace(jail),
		Position:     jail,
		RolledDouble: true,
		SentToJail:   true,
	}, nil
}
