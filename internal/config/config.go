package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Owner    OwnerConfig    `yaml:"owner"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Mode           string   `yaml:"mode"` // debug, release, test
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // sqlite database file
}

type SessionConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// OwnerConfig bootstraps the owner account on startup. Credentials is
// "username:password"; empty disables the upsert entirely.
type OwnerConfig struct {
	Credentials string `yaml:"credentials"`
	Name        string `yaml:"name"`
}

var GlobalConfig *Config

// Load reads the optional YAML file at configPath, falling back to
// defaults, then applies environment overrides. Env always wins.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     "3000",
			Mode:     "debug",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Path: "data/site.db",
		},
		Session: SessionConfig{
			Secret:     "change_this",
			ExpireHour: 168,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, trimmed)
			}
		}
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		c.Session.Secret = secret
	}
	if hours := os.Getenv("SESSION_EXPIRE_HOURS"); hours != "" {
		if n, err := strconv.Atoi(hours); err == nil && n > 0 {
			c.Session.ExpireHour = n
		}
	}
	if owner := os.Getenv("INITIAL_OWNER"); owner != "" {
		c.Owner.Credentials = owner
	}
	if name := os.Getenv("INITIAL_OWNER_NAME"); name != "" {
		c.Owner.Name = name
	}
}

// OwnerCredentials splits the configured "username:password" pair.
// ok is false when the upsert is disabled or the pair is malformed.
func (c *Config) OwnerCredentials() (username, password string, ok bool) {
	if c.Owner.Credentials == "" {
		return "", "", false
	}
	parts := strings.SplitN(c.Owner.Credentials, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
