package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func shutdownSignal() <-chan os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return quit
}

// runUntilSignal runs loop in the background until quit fires, then cancels
// it and waits for it to return, so deferred closes never race the loop.
func runUntilSignal(quit <-chan os.Signal, logger *zap.Logger, name string, loop func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		loop(ctx)
	}()

	select {
	case <-quit:
		logger.Info(name + " shutting down")
		cancel()
		<-done
	case <-done:
	}
}
