package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP on the configured address. The returned channel is closed once
// SIGINT, SIGTERM or SIGHUP arrives; a listen failure exits the process.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		err := a.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		defer close(done)
		defer stop()

		<-ctx.Done()
		slog.Info("termination signal received")
	}()

	return done
}

// Serve runs the HTTP server on l. The channel yields the result of http.Server.Serve.
func (a *App) Serve(l net.Listener) <-chan error {
	result := make(chan error, 1)
	go func() {
		defer close(result)
		result <- a.httpServer.Serve(l)
	}()
	return result
}

// Stop drains in-flight requests, waits for background publishes and then
// releases resources in registration order.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "http server shutdown", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background tasks finished with error", "error", err)
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "close resource", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}
