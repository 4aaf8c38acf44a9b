package cliconfig

import (
	"fmt"
	"os"
	"strings"
)

// LoadSecrets fills secrets from their *File settings when the value itself
// is not set. A file given as a flag replaces an inline value that came from
// env or the config file; an inline flag still wins. Trailing newlines are
// stripped.
func LoadSecrets(cfg *Config, changed map[string]bool) error {
	secrets := []struct {
		name string
		path string
		dst  *string
	}{
		{"application-secret", cfg.ApplicationSecretFile, &cfg.ApplicationSecret},
		{"password", cfg.PasswordFile, &cfg.Password},
		{"access-code", cfg.AccessCodeFile, &cfg.AccessCode},
	}

	for _, s := range secrets {
		if changed[s.name+"-file"] && !changed[s.name] {
			*s.dst = ""
		}
		if *s.dst != "" || s.path == "" {
			continue
		}
		v, err := readSecret(s.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", s.name, err)
		}
		*s.dst = v
	}
	return nil
}

func readSecret(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	v := strings.TrimRight(string(b), "\r\n")
	if v == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return v, nil
}
