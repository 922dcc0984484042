package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "https://promptelo-api.onrender.com"

// ClientConfig is the local scorer configuration persisted at
// ~/.promptelo/config.json. Environment variables take precedence
// over the file.
type ClientConfig struct {
	ServerURL     string  `json:"server_url"`
	UserID        string  `json:"user_id,omitempty"`
	Timeout       float64 `json:"timeout"`
	SetupComplete bool    `json:"setup_complete,omitempty"`
}

func clientConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".promptelo", "config.json"), nil
}

// LoadClient reads the config file, falling back to defaults when the
// file is missing or unreadable.
func LoadClient() ClientConfig {
	cfg := ClientConfig{
		ServerURL: DefaultServerURL,
		Timeout:   5.0,
	}

	path, err := clientConfigPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			// Malformed files keep the defaults.
			_ = json.Unmarshal(data, &cfg)
		}
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5.0
	}

	if url := os.Getenv("PROMPTELO_SERVER_URL"); url != "" {
		cfg.ServerURL = url
	}
	if user := os.Getenv("PROMPTELO_USER_ID"); user != "" {
		cfg.UserID = user
	}

	return cfg
}

// SaveClient persists the config file, creating ~/.promptelo if needed.
func SaveClient(cfg ClientConfig) error {
	path, err := clientConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// RequestTimeout converts the configured timeout to a duration.
func (c ClientConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}
