package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CAMPAIGN_CONFIG_FILE", "")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "forms", cfg.FormCollection)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Len(t, cfg.JWTConfigs, 1)
	assert.Equal(t, "campaign-api", cfg.JWTConfigs[0].Issuer)
	assert.NotNil(t, cfg.Logger)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("CAMPAIGN_CONFIG_FILE", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFileOverlayEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
AUTH_JWT_SECRET: from-file
MONGO_DB: from-file
HTTP_ADDR: ":9000"
API_ALLOWED_ORIGINS: "https://a.example.com, https://b.example.com"
`), 0o600))

	t.Setenv("CAMPAIGN_CONFIG_FILE", path)
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("MONGO_DB", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.MongoDatabase)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, []byte("from-file"), cfg.JWTConfigs[0].Secret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CAMPAIGN_CONFIG_FILE", "")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}
