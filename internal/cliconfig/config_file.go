package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BaseURL               string `toml:"base_url"`
	ApplicationKey        string `toml:"application_key"`
	ApplicationSecret     string `toml:"application_secret"`
	ApplicationSecretFile string `toml:"application_secret_file"`
	Username              string `toml:"username"`
	Password              string `toml:"password"`
	PasswordFile          string `toml:"password_file"`
	AccessCode            string `toml:"access_code"`
	AccessCodeFile        string `toml:"access_code_file"`
	TokenTransport        string `toml:"token_transport"`
	HTTPTimeout           string `toml:"http_timeout"`
	MessagesPerMinute     *int   `toml:"messages_per_minute"`
	LogLevel              string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.yampost/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".yampost", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("application-key", fc.ApplicationKey, &cfg.ApplicationKey)
	s.setSecret("application-secret", fc.ApplicationSecret, fc.ApplicationSecretFile, &cfg.ApplicationSecret, &cfg.ApplicationSecretFile)
	s.setString("username", fc.Username, &cfg.Username)
	s.setSecret("password", fc.Password, fc.PasswordFile, &cfg.Password, &cfg.PasswordFile)
	s.setSecret("access-code", fc.AccessCode, fc.AccessCodeFile, &cfg.AccessCode, &cfg.AccessCodeFile)
	s.setString("token-transport", fc.TokenTransport, &cfg.TokenTransport)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setIntPtr("messages-per-minute", fc.MessagesPerMinute, &cfg.MessagesPerMinute)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
