package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/shopapp/pkg/logger"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))
}

func TestInjectLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc123")

	ctx := logger.InjectLogger(context.Background(), reqLog)
	logger.WithCtx(ctx).Info("product created")

	assert.Contains(t, buf.String(), "request_id=abc123")
	assert.Contains(t, buf.String(), `msg="product created"`)
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("component", "catalog")

	log.Info("listing products")
	log.Warn("garment missing")

	assert.Contains(t, a.String(), "listing products")
	assert.Contains(t, a.String(), "garment missing")
	assert.NotContains(t, b.String(), "listing products")
	assert.Contains(t, b.String(), "component=catalog")
}
