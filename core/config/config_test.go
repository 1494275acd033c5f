package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_SECRET", "")
	t.Setenv("AUTHORIZED_UUID", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.UploadDir)
	assert.Equal(t, "downloads", cfg.Server.DownloadDir)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Storage.Enabled)
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_LegacyEnvNames(t *testing.T) {
	t.Setenv("APP_SECRET", "session-secret")
	t.Setenv("AUTHORIZED_UUID", "4b1d")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "session-secret", cfg.Server.AppSecret)
	assert.Equal(t, "4b1d", cfg.Server.AuthorizedUUID)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_NestedEnvNames(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_APP_SECRET", "nested")
	t.Setenv("SERVER_AUTHORIZED_UUID", "token")
	t.Setenv("STORAGE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "nested", cfg.Server.AppSecret)
	assert.Equal(t, "token", cfg.Server.AuthorizedUUID)
	assert.True(t, cfg.Storage.Enabled)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "APP_SECRET=from-file\nAUTHORIZED_UUID=file-token\nSERVER_UPLOAD_DIR=/tmp/in\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	// godotenv.Overload writes into the process environment; restore afterwards.
	t.Setenv("APP_SECRET", "")
	t.Setenv("AUTHORIZED_UUID", "")
	t.Setenv("SERVER_UPLOAD_DIR", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Server.AppSecret)
	assert.Equal(t, "file-token", cfg.Server.AuthorizedUUID)
	assert.Equal(t, "/tmp/in", cfg.Server.UploadDir)
}
