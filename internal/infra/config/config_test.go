package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, "BK Cloud", cfg.ProfileLabel)
	assert.True(t, cfg.PaymentLinkOut, "link-out is the default")
	assert.NotEmpty(t, cfg.SessionPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "bkcloud")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[api]
base_url = "https://cloud.example.com/shm/v1"
timeout = "10s"

[payment]
link_out = false

[support]
url = "https://t.me/support"
`), 0o600))

	cfg, err := Load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example.com/shm/v1", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.False(t, cfg.PaymentLinkOut)
	assert.Equal(t, "https://t.me/support", cfg.SupportURL)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BKCLOUD_API_BASE_URL", "https://env.example.com/shm/v1")
	t.Setenv("BKCLOUD_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/shm/v1", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "bkcloud")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api\n"), 0o600))

	_, err := Load(viper.New())
	assert.Error(t, err)
}
