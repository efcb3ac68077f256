package config

import (
	"net/url"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig represents the application configuration loaded from a TOML file
type AppConfig struct {
	Kiss KissConfig `toml:"kiss"`
}

// KissConfig carries the GIF catalog shown on kiss responses and an optional
// proposal lifetime override.
type KissConfig struct {
	Gifs       []string `toml:"gifs"`
	TTLSeconds int      `toml:"ttl_seconds"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	// Interaction reply tokens stop working after 15 minutes, so a longer
	// lifetime could never be answered with a follow-up.
	if a.Kiss.TTLSeconds < 0 || a.Kiss.TTLSeconds > 15*60 {
		return goerr.New("kiss ttl_seconds must be between 0 and 900", goerr.V("ttl_seconds", a.Kiss.TTLSeconds))
	}

	seen := make(map[string]bool)
	for _, gif := range a.Kiss.Gifs {
		u, err := url.Parse(gif)
		if err != nil || u.Scheme != "https" {
			return goerr.New("kiss gif must be an https URL", goerr.V("url", gif))
		}
		if seen[gif] {
			return goerr.New("duplicate kiss gif", goerr.V("url", gif))
		}
		seen[gif] = true
	}
	return nil
}

// DefaultAppConfig returns the built-in configuration used when no config
// file is given.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Kiss: KissConfig{
			Gifs: []string{
				"https://media.tenor.com/0AVbKGY_MxMAAAAC/kiss-anime.gif",
				"https://media.tenor.com/Gx5pFtEQBY0AAAAC/anime-kiss.gif",
				"https://media.tenor.com/YoIRE3RQKTEAAAAC/kiss-cute.gif",
			},
		},
	}
}

// LoadAppConfig loads the application configuration from a TOML file
func LoadAppConfig(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
