package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/shopapp/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second

	// DefaultShutdownDeadline bounds how long in-flight requests may drain.
	DefaultShutdownDeadline = 10 * time.Second
)

// Start listens on addr and serves handler until ctx is cancelled.
func Start(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler, DefaultShutdownDeadline)
}

// Serve accepts connections on ln until ctx is cancelled, then drains active
// requests for at most deadline before closing them.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, deadline time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down", "deadline", deadline.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("server: forced close after deadline")
			return nil
		}
		return err
	}
	logger.Info("server: stopped")
	return nil
}
