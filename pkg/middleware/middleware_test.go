package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopapp/config"
	"github.com/shashiranjanraj/shopapp/pkg/logger"
	"github.com/shashiranjanraj/shopapp/pkg/middleware"
	"github.com/shashiranjanraj/shopapp/pkg/reqid"
)

func echoMethod(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(r.Method))
}

func TestMethodOverrideFromQuery(t *testing.T) {
	h := middleware.MethodOverride(http.HandlerFunc(echoMethod))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/1?_method=DELETE", nil))
	assert.Equal(t, http.MethodDelete, rec.Body.String())
}

func TestMethodOverrideFromForm(t *testing.T) {
	var name string
	h := middleware.MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name = r.PostForm.Get("name")
		echoMethod(w, r)
	}))

	req := httptest.NewRequest(http.MethodPost, "/products/1", strings.NewReader("_method=put&name=Kaos"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.MethodPut, rec.Body.String())
	assert.Equal(t, "Kaos", name)
}

func TestMethodOverrideCapsFormBody(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "32")
	t.Cleanup(func() { config.Set("MAX_BODY_BYTES", "4194304") })

	reached := false
	h := middleware.MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		echoMethod(w, r)
	}))

	body := "_method=put&name=" + strings.Repeat("k", 64)
	req := httptest.NewRequest(http.MethodPost, "/products/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body too large (max 32 bytes)", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/products/1", strings.NewReader("_method=put&name=Kaos"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, reached)
	assert.Equal(t, http.MethodPut, rec.Body.String())
}

func TestMethodOverrideIgnoresOtherVerbs(t *testing.T) {
	h := middleware.MethodOverride(http.HandlerFunc(echoMethod))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products?_method=GET", nil))
	assert.Equal(t, http.MethodPost, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?_method=DELETE", nil))
	assert.Equal(t, http.MethodGet, rec.Body.String())
}

func TestRecoveryWritesGenericMessage(t *testing.T) {
	h := middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("database password is hunter2")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestLoggerInjectsRequestLogger(t *testing.T) {
	var injected bool
	h := reqid.Middleware()(middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		injected = logger.WithCtx(r.Context()) != logger.L
		w.WriteHeader(http.StatusCreated)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, injected)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
}

func TestLoggerRecordsClientIP(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { logger.L = prev })

	h := reqid.Middleware()(middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "1.2.3.4", entry["ip"])
	assert.Equal(t, float64(http.StatusNoContent), entry["status"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", middleware.ClientIP(req))

	req.Header.Set("X-Real-Ip", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", middleware.ClientIP(req))
}
