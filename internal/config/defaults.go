package config

import (
	"os"
	"path/filepath"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// DefaultPort is the static host port.
const DefaultPort = 3000

// DefaultHidden are asset globs the static host never serves.
var DefaultHidden = []string{
	"**/.*",
	"**/*.go",
	"**/*.yml",
	"**/*.db",
}

// Dir returns the per-user interview directory (~/.interview).
// Falls back to a relative .interview directory when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".interview"
	}
	return filepath.Join(home, ".interview")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yml")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
		},
		Session: SessionConfig{
			Path: filepath.Join(Dir(), "session.db"),
		},
		Server: ServerConfig{
			Port:   DefaultPort,
			Hidden: append([]string(nil), DefaultHidden...),
		},
		Chat: ChatConfig{
			ExportDir: ".",
		},
	}
}
