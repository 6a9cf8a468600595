package render_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopapp/pkg/render"
)

func TestJSONRenderer(t *testing.T) {
	rec := httptest.NewRecorder()
	err := render.JSON{}.Render(rec, http.StatusOK, "products/index", render.Map{"category": "All"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc struct {
		Status int            `json:"status"`
		View   string         `json:"view"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, 200, doc.Status)
	assert.Equal(t, "products/index", doc.View)
	assert.Equal(t, "All", doc.Data["category"])
}

func TestFuncRenderer(t *testing.T) {
	var gotView string
	r := render.Func(func(w http.ResponseWriter, status int, view string, _ render.Map) error {
		gotView = view
		w.WriteHeader(status)
		return nil
	})

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusCreated, "home", nil))
	assert.Equal(t, "home", gotView)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestJSONRendererLeavesResponseUnwrittenOnEncodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := render.JSON{}.Render(rec, http.StatusOK, "products/show", render.Map{"price": math.NaN()})
	require.Error(t, err)

	assert.False(t, rec.Flushed)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}
