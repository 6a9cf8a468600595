package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, appJSON, dotEnv string) {
	t.Helper()
	_ = Load()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "app.json")
	env := filepath.Join(dir, ".env")
	if appJSON != "" {
		require.NoError(t, os.WriteFile(cfg, []byte(appJSON), 0o600))
	}
	if dotEnv != "" {
		require.NoError(t, os.WriteFile(env, []byte(dotEnv), 0o600))
	}
	require.NoError(t, loadFromFiles(cfg, env))
	t.Cleanup(func() { require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env"))) })
}

func TestDefaults(t *testing.T) {
	loadFixture(t, "", "")

	assert.Equal(t, "8080", AppPort())
	assert.Equal(t, "mongo", StoreDriver())
	assert.Equal(t, 5*time.Minute, CacheTTL())
	assert.Equal(t, PolicyKeep, GarmentDeletePolicy())
	assert.Equal(t, PolicyKeep, ProductDeletePolicy())
	assert.False(t, EntityAwareMalformedID())
	assert.Equal(t, "", RedisAddr())
	assert.Equal(t, 8, CatalogWorkers())
}

func TestFilesAndEnvironmentPrecedence(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	loadFixture(t,
		`{"app_port":"7000","store_driver":"sqlite","cache_ttl":"30s","ignored":1}`,
		"# comment\nSTORE_DRIVER=postgres\nGARMENT_DELETE_POLICY=\"cascade\"\nMALFORMED_ID_MESSAGE=entity\n")

	assert.Equal(t, "9090", AppPort())
	assert.Equal(t, "postgres", StoreDriver())
	assert.Equal(t, 30*time.Second, CacheTTL())
	assert.Equal(t, PolicyCascade, GarmentDeletePolicy())
	assert.True(t, EntityAwareMalformedID())
	assert.Contains(t, DatabaseDSN(), "dbname=shop_db")
}

func TestInvalidValuesFallBack(t *testing.T) {
	loadFixture(t, "", "STORE_DRIVER=oracle\nCACHE_TTL=soon\nPRODUCT_DELETE_POLICY=explode\n")

	assert.Equal(t, "mongo", StoreDriver())
	assert.Equal(t, 5*time.Minute, CacheTTL())
	assert.Equal(t, PolicyKeep, ProductDeletePolicy())
}

func TestCatalogWorkers(t *testing.T) {
	loadFixture(t, "", "CATALOG_WORKERS=3\n")
	assert.Equal(t, 3, CatalogWorkers())

	Set("CATALOG_WORKERS", "-1")
	assert.Equal(t, 8, CatalogWorkers())
}

func TestDatabaseDSNOverride(t *testing.T) {
	loadFixture(t, "", "STORE_DRIVER=sqlite\nDATABASE_DSN=/tmp/x.db\n")
	assert.Equal(t, "/tmp/x.db", DatabaseDSN())
}

func TestMySQLDefaultDSNReportsMatchedRows(t *testing.T) {
	loadFixture(t, "", "STORE_DRIVER=mysql\n")
	assert.Contains(t, DatabaseDSN(), "clientFoundRows=true")
}

func TestMalformedJSONIsAnError(t *testing.T) {
	_ = Load()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(cfg, []byte("{"), 0o600))

	assert.Error(t, loadFromFiles(cfg, filepath.Join(dir, ".env")))
}

func TestSetAndGet(t *testing.T) {
	loadFixture(t, "", "")

	Set("product_delete_policy", "detach")
	assert.Equal(t, PolicyDetach, ProductDeletePolicy())
	assert.Equal(t, "fallback", Get("UNKNOWN_KEY", "fallback"))
}
