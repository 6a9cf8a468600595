package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestMemorySetGetDel(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var got entry
	assert.False(t, m.Get(ctx, "k", &got))

	require.NoError(t, m.Set(ctx, "k", entry{Name: "Kaos", Price: 5}, 0))
	require.True(t, m.Get(ctx, "k", &got))
	assert.Equal(t, entry{Name: "Kaos", Price: 5}, got)

	require.NoError(t, m.Del(ctx, "k"))
	assert.False(t, m.Get(ctx, "k", &got))
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", entry{Name: "x"}, time.Minute))

	var got entry
	now = now.Add(59 * time.Second)
	assert.True(t, m.Get(ctx, "k", &got))

	now = now.Add(time.Second)
	assert.False(t, m.Get(ctx, "k", &got))
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var s Store = Nop{}
	require.NoError(t, s.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.False(t, s.Get(ctx, "k", &v))
	assert.NoError(t, s.Del(ctx, "k"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "shop:product:abc", Key("product", "abc"))
}

// Runs only when REDIS_TEST_ADDR points at a disposable server.
func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()

	r, err := NewRedis(ctx, addr, "")
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck

	key := Key("test", time.Now().Format(time.RFC3339Nano))
	require.NoError(t, r.Set(ctx, key, entry{Name: "Kaos"}, time.Minute))

	var got entry
	require.True(t, r.Get(ctx, key, &got))
	assert.Equal(t, "Kaos", got.Name)

	require.NoError(t, r.Del(ctx, key))
	assert.False(t, r.Get(ctx, key, &got))
}
