package bind_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopapp/pkg/bind"
)

func formRequest(method string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, "/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFieldsFromForm(t *testing.T) {
	req := formRequest(http.MethodPost, url.Values{
		"name":    {"Kaos", "ignored"},
		"price":   {"50000"},
		"_method": {"PUT"},
	})

	fields, err := bind.Fields(req)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Kaos", "price": "50000"}, fields)
}

func TestFieldsFromParsedForm(t *testing.T) {
	req := formRequest(http.MethodPost, url.Values{"color": {"Hitam"}})
	require.NoError(t, req.ParseForm())

	fields, err := bind.Fields(req)
	require.NoError(t, err)
	assert.Equal(t, "Hitam", fields["color"])
}

func TestFieldsFromJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/products/1",
		strings.NewReader(`{"name":"Kaos","price":12.50,"category":null,"_method":"DELETE"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	fields, err := bind.Fields(req)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Kaos", "price": "12.50"}, fields)
}

func TestFieldsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	req.Header.Set("Content-Type", "application/json")

	fields, err := bind.Fields(req)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestFieldsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")

	_, err := bind.Fields(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
