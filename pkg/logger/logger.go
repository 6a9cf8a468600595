// Package logger provides the shop's structured, levelled logger built on log/slog.
//
// WithCtx returns the request-scoped logger injected by middleware.Logger,
// so every line written from a handler carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "product_id", p.ID.Hex())
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/shopapp/config"
)

var L *slog.Logger

func init() {
	L = slog.New(baseHandler(config.AppEnv()))
	slog.SetDefault(L)
}

func baseHandler(env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup rebuilds the base logger for env and fans records out to extra
// handlers (for example a MongoHandler).
func Setup(env string, extra ...slog.Handler) *slog.Logger {
	h := baseHandler(env)
	if len(extra) > 0 {
		h = NewMultiHandler(append([]slog.Handler{h}, extra...)...)
	}
	L = slog.New(h)
	slog.SetDefault(L)
	return L
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log into ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
