package config

// Config is the top-level interview configuration, corresponding to ~/.interview/config.yml.
type Config struct {
	API     APIConfig     `yaml:"api" koanf:"api"`
	Session SessionConfig `yaml:"session" koanf:"session"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Chat    ChatConfig    `yaml:"chat" koanf:"chat"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// SessionConfig holds the location of the persistent session store.
type SessionConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// ServerConfig holds static asset host settings.
type ServerConfig struct {
	Port            int      `yaml:"port" koanf:"port"`
	RootDir         string   `yaml:"root_dir" koanf:"root_dir"` // empty serves the embedded pages
	Hidden          []string `yaml:"hidden" koanf:"hidden"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ChatConfig holds chat transcript settings.
type ChatConfig struct {
	ExportDir string `yaml:"export_dir" koanf:"export_dir"`
}
