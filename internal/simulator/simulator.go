// Package simulator plays many independent games and aggregates their
// statistics.
//
// Every run owns its own players, dice and collector, so runs share no
// mutable state and can execute on separate goroutines. Only the final merge
// into the report total is synchronized.
package simulator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/monopolysim/internal/board"
	"github.com/lox/monopolysim/internal/dice"
	"github.com/lox/monopolysim/internal/game"
	"github.com/lox/monopolysim/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Players []string
	Runs    int
	Workers int
	Seed    int64        // run i uses Seed+i
	Board   *board.Board // defaults to the standard layout
	Logger  *log.Logger
	Clock   quartz.Clock // defaults to the real clock
}

// RunResult is the outcome of one game.
type RunResult struct {
	Index    int
	ID       uuid.UUID
	Seed     int64
	Stats    *statistics.Collector
	Started  time.Time // from the simulator clock
	Duration time.Duration
}

// Report aggregates all runs.
type Report struct {
	Runs    []RunResult // ordered by Index
	Total   *statistics.Collector
	Board   *board.Board
	Rounds  int
	Players []string
	Elapsed time.Duration
}

// Snapshots returns the per-run collectors in export form.
func (r *Report) Snapshots() []statistics.RunSnapshot {
	out := make([]statistics.RunSnapshot, len(r.Runs))
	for i, run := range r.Runs {
		out[i] = statistics.RunSnapshot{
			RunID:     run.ID.String(),
			Timestamp: run.Started,
			Rounds:    r.Rounds,
			Players:   len(r.Players),
			Collector: run.Stats,
		}
	}
	return out
}

// Simulator runs Monopoly turn simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1, got %d", config.Runs)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Board == nil {
		config.Board = board.NewDefault()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}, nil
}

// Run plays every configured game and returns the merged report. The first
// failing run cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	clock := s.config.Clock
	start := clock.Now()

	report := &Report{
		Runs:    make([]RunResult, s.config.Runs),
		Total:   statistics.NewCollector(),
		Board:   s.config.Board,
		Rounds:  s.config.Rounds,
		Players: s.config.Players,
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Runs; i++ {
		g.Go(func() error {
			result, err := s.playRun(ctx, i)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			report.Runs[i] = result
			report.Total.Merge(result.Stats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := report.Total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report.Elapsed = clock.Since(start)
	s.logger.Info("Simulation complete",
		"runs", s.config.Runs,
		"rolls", report.Total.TotalRolls(),
		"landings", report.Total.TotalLandings(),
		"elapsed", report.Elapsed)
	return report, nil
}

func (s *Simulator) playRun(ctx context.Context, index int) (RunResult, error) {
	seed := s.config.Seed + int64(index)
	id := uuid.New()
	logger := s.logger.With("run", index+1, "id", id.String()[:8])
	started := s.config.Clock.Now()

	stats := statistics.NewCollector()
	g, err := game.New(game.Config{
		Rounds:  s.config.Rounds,
		Players: s.config.Players,
		Board:   s.config.Board,
		Dice:    dice.NewSeeded(seed),
		Stats:   stats,
		Logger:  logger,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("run %d: %w", index+1, err)
	}

	logger.Debug("Run started", "seed", seed)
	if err := g.Run(ctx); err != nil {
		return RunResult{}, fmt.Errorf("run %d (seed %d): %w", index+1, seed, err)
	}

	result := RunResult{
		Index:    index,
		ID:       id,
		Seed:     seed,
		Stats:    stats,
		Started:  started,
		Duration: s.config.Clock.Since(started),
	}
	logger.Debug("Run finished", "rolls", stats.TotalRolls(), "duration", result.Duration)
	return result, nil
}
