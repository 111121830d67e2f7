package main

import (
	"context"
	"log/slog"
)

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

type waiter interface {
	Wait()
}

// shutdown stops the server and then waits for queued check-in notifications,
// so they finish before the publisher closes. When the server did not stop in
// time, handlers may still queue notifications and the wait is skipped.
func shutdown(ctx context.Context, srv shutdowner, pending any, logger *slog.Logger) error {
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown timed out, not waiting for check-in notifications", "error", err)
		return err
	}
	if w, ok := pending.(waiter); ok {
		w.Wait()
	}
	return nil
}
