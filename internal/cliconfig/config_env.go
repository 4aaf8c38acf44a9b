package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (YAMPOST_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", os.Getenv("YAMPOST_BASE_URL"), &cfg.BaseURL)
	s.setString("application-key", os.Getenv("YAMPOST_APPLICATION_KEY"), &cfg.ApplicationKey)
	s.setSecret("application-secret", os.Getenv("YAMPOST_APPLICATION_SECRET"), os.Getenv("YAMPOST_APPLICATION_SECRET_FILE"), &cfg.ApplicationSecret, &cfg.ApplicationSecretFile)
	s.setString("username", os.Getenv("YAMPOST_USERNAME"), &cfg.Username)
	s.setSecret("password", os.Getenv("YAMPOST_PASSWORD"), os.Getenv("YAMPOST_PASSWORD_FILE"), &cfg.Password, &cfg.PasswordFile)
	s.setSecret("access-code", os.Getenv("YAMPOST_ACCESS_CODE"), os.Getenv("YAMPOST_ACCESS_CODE_FILE"), &cfg.AccessCode, &cfg.AccessCodeFile)
	s.setString("token-transport", os.Getenv("YAMPOST_TOKEN_TRANSPORT"), &cfg.TokenTransport)
	s.setString("log-level", os.Getenv("YAMPOST_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("YAMPOST_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setIntFromString("messages-per-minute", os.Getenv("YAMPOST_MESSAGES_PER_MINUTE"), &cfg.MessagesPerMinute); err != nil {
		return err
	}

	return nil
}
