package webapp

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries the runtime settings for the web frontend. The backend base
// URL is the only required value; everything server-side (parsing, analysis,
// chat) lives behind it.
type Config struct {
	ListenAddr string        `yaml:"listen_addr"`
	BackendURL string        `yaml:"backend_url"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

const (
	envListenAddr = "ANALYTICA_LISTEN_ADDR"
	envBackendURL = "ANALYTICA_BACKEND_URL"
	envSessionTTL = "ANALYTICA_SESSION_TTL"
)

// LoadConfig resolves configuration from, in increasing precedence: defaults,
// an optional YAML file, and ANALYTICA_* environment variables. A .env file
// in the working directory is loaded first when present.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr: ":3000",
		SessionTTL: 24 * time.Hour,
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("webapp: read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("webapp: parse config %s: %w", path, err)
		}
	}
	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envBackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv(envSessionTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("webapp: parse %s: %w", envSessionTTL, err)
		}
		cfg.SessionTTL = ttl
	}
	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("webapp: backend url is required (set backend_url or %s)", envBackendURL)
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return cfg, nil
}
