package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultListen is used when server.listen is not configured.
	DefaultListen = ":8080"

	// DefaultTimeoutSeconds bounds command execution when
	// command.timeout is not configured.
	DefaultTimeoutSeconds = 60
)

// Config is the bot's TOML configuration.
type Config struct {
	Command  CommandConfig  `toml:"command"`
	Slack    SlackConfig    `toml:"slack"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
}

// CommandConfig restricts what the bot may execute.
type CommandConfig struct {
	// Allows lists permitted program names. Matching is exact.
	Allows []string `toml:"allows"`
	// Timeout is the per-command execution bound in seconds.
	Timeout int `toml:"timeout"`
}

// SlackConfig covers both directions: the incoming webhook used for
// posting results and the optional signing secret for verifying
// inbound event requests.
type SlackConfig struct {
	Webhook       string `toml:"webhook"`
	Channel       string `toml:"channel"`
	Username      string `toml:"username"`
	Icon          string `toml:"icon"`
	SigningSecret string `toml:"signing_secret"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

// DatabaseConfig enables the execution audit log when URL is set.
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// Load reads and validates the TOML config file. Missing required
// keys are an error; the caller treats that as fatal and must not
// serve requests.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Command.Allows) == 0 {
		return Config{}, errors.New("command.allows required")
	}
	if cfg.Slack.Webhook == "" {
		return Config{}, errors.New("slack.webhook required")
	}
	if cfg.Slack.Channel == "" {
		return Config{}, errors.New("slack.channel required")
	}
	if cfg.Slack.Username == "" {
		return Config{}, errors.New("slack.username required")
	}

	if cfg.Command.Timeout <= 0 {
		cfg.Command.Timeout = DefaultTimeoutSeconds
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}

	return cfg, nil
}
