package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// SetupSignalHandlerWithLogger returns a context cancelled on SIGINT or
// SIGTERM, logging the signal first. The stop function releases the handler
// and cancels the context.
func SetupSignalHandlerWithLogger(logger *log.Logger) (context.Context, context.CancelFunc) {
	return notifyContext(context.Background(), logger, os.Interrupt, syscall.SIGTERM)
}

func notifyContext(parent context.Context, logger *log.Logger, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if logger != nil {
				logger.Info("Received signal, stopping simulation", "signal", sig.String())
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
