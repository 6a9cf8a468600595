package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/shopapp/pkg/reqid"
)

func serve(header string) (seen string, rec *httptest.ResponseRecorder) {
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddlewareGeneratesID(t *testing.T) {
	seen, rec := serve("")

	assert.Len(t, seen, 32)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestMiddlewareHonoursUpstreamID(t *testing.T) {
	seen, _ := serve("gateway-42")
	assert.Equal(t, "gateway-42", seen)
}

func TestMiddlewareRejectsUnsafeUpstreamID(t *testing.T) {
	seen, _ := serve("bad id\nlevel=ERROR")
	assert.NotEqual(t, "bad id\nlevel=ERROR", seen)
	assert.Len(t, seen, 32)
}
