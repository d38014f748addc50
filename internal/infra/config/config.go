// Package config loads client settings from the config file, environment and
// defaults, in that order of increasing priority for the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "bkcloud"
	envPrefix  = "BKCLOUD"

	keyAPIBaseURL     = "api.base_url"
	keyAPITimeout     = "api.timeout"
	keyProfileLabel   = "profile.label"
	keySupportURL     = "support.url"
	keyPaymentLinkOut = "payment.link_out"
	keySessionPath    = "session.path"
	keyLogFile        = "log.file"
	keyLogLevel       = "log.level"
)

// DefaultBaseURL points at a locally deployed SHM backend.
const DefaultBaseURL = "http://127.0.0.1:8081/shm/v1"

type Config struct {
	APIBaseURL     string
	APITimeout     time.Duration
	ProfileLabel   string
	SupportURL     string
	PaymentLinkOut bool
	SessionPath    string
	LogFile        string
	LogLevel       string
}

// Load reads the config file (if present), applies BKCLOUD_* environment
// overrides and fills defaults. A .env file in the working directory is
// loaded first so launchers can ship one.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	_ = godotenv.Load()

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)

	cfg.SetDefault(keyAPIBaseURL, DefaultBaseURL)
	cfg.SetDefault(keyAPITimeout, 30*time.Second)
	cfg.SetDefault(keyProfileLabel, "BK Cloud")
	cfg.SetDefault(keySupportURL, "")
	// Payment links open through the host unless explicitly configured
	// otherwise.
	cfg.SetDefault(keyPaymentLinkOut, true)
	cfg.SetDefault(keySessionPath, filepath.Join(dir, "session.toml"))
	cfg.SetDefault(keyLogFile, filepath.Join(dir, "bkcloud.log"))
	cfg.SetDefault(keyLogLevel, "info")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		APIBaseURL:     cfg.GetString(keyAPIBaseURL),
		APITimeout:     cfg.GetDuration(keyAPITimeout),
		ProfileLabel:   cfg.GetString(keyProfileLabel),
		SupportURL:     cfg.GetString(keySupportURL),
		PaymentLinkOut: cfg.GetBool(keyPaymentLinkOut),
		SessionPath:    cfg.GetString(keySessionPath),
		LogFile:        cfg.GetString(keyLogFile),
		LogLevel:       cfg.GetString(keyLogLevel),
	}

	if loaded.APIBaseURL == "" {
		return Config{}, errors.New("api base url is empty")
	}
	if loaded.APITimeout <= 0 {
		loaded.APITimeout = 30 * time.Second
	}

	return loaded, nil
}

// Dir is the per-user directory holding the config file, session and log.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, configDir), nil
}
