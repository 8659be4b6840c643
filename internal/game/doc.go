// Package game implements the turn engine for a Monopoly-style board.
//
// TurnEngine executes exactly one roll per PlayTurn call: jail attempts,
// movement, the Go To Jail redirect, and statistics reporting. Game is the
// round/player driver on top of it and owns the doubles streak, since that
// rule spans several PlayTurn calls.
//
// # Basic Usage
//
//	stats := statistics.NewCollector()
//	g, err := game.New(game.Config{
//	    Rounds:  100,
//	    Players: []string{"Alice", "Bob"},
//	    Dice:    dice.NewSeeded(42),
//	    Stats:   stats,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := g.Run(ctx); err != nil {
//	    return err
//	}
//	landings := stats.LandingStats()
//
// # Deterministic Testing
//
// Any dice.Roller can drive the engine. dice.Pairs scripts exact rolls:
//
//	engine := game.NewTurnEngine(board.NewDefault(), dice.Pairs(3, 4), stats)
//	result, err := engine.PlayTurn(player) // lands on Vermont Avenue
//
// # Events
//
// The engine publishes DiceRolled, PlayerMoved, JailEntered and JailReleased
// events on its EventBus; Game adds RoundStarted. Formatting is left to
// subscribers: LogSubscriber writes debug logs, and a TraceSubscriber with an
// EventFormatter narrates turns:
//
//	bus := game.NewEventBus()
//	bus.Subscribe(game.NewTraceSubscriber(
//	    game.NewEventFormatter(game.FormattingOptions{ShowPositions: true}),
//	    func(line string) { fmt.Println(line) },
//	))
package game
