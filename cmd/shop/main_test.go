package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoutes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRoutes(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))

	text := out.String()
	for _, name := range []string{"home", "products.index", "products.show", "garments.products.store"} {
		assert.Contains(t, text, name)
	}
	assert.Contains(t, text, "/garments/{garment_id}/products")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "route:list", "migrate", "migrate:rollback", "migrate:status", "seed"} {
		assert.True(t, names[want], want)
	}
}
