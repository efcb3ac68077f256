package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/amora-bot/amora/pkg/cli/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amora.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfigFile(t, `
[kiss]
gifs = [
  "https://example.com/a.gif",
  "https://example.com/b.gif",
]
`)

	cfg, err := config.LoadAppConfig(path)
	gt.NoError(t, err).Required()
	gt.Array(t, cfg.Kiss.Gifs).Length(2)
	gt.Value(t, cfg.Kiss.Gifs[0]).Equal("https://example.com/a.gif")
}

func TestLoadAppConfigFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAppConfig(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := writeConfigFile(t, `[kiss\ngifs =`)
		_, err := config.LoadAppConfig(path)
		gt.Error(t, err)
	})

	t.Run("non-https gif", func(t *testing.T) {
		path := writeConfigFile(t, `
[kiss]
gifs = ["http://example.com/a.gif"]
`)
		_, err := config.LoadAppConfig(path)
		gt.Error(t, err)
	})

	t.Run("duplicate gif", func(t *testing.T) {
		path := writeConfigFile(t, `
[kiss]
gifs = ["https://example.com/a.gif", "https://example.com/a.gif"]
`)
		_, err := config.LoadAppConfig(path)
		gt.Error(t, err)
	})

	t.Run("ttl beyond reply token lifetime", func(t *testing.T) {
		path := writeConfigFile(t, `
[kiss]
gifs = ["https://example.com/a.gif"]
ttl_seconds = 1200
`)
		_, err := config.LoadAppConfig(path)
		gt.Error(t, err)
	})
}

func TestLoadAppConfigTTL(t *testing.T) {
	path := writeConfigFile(t, `
[kiss]
gifs = ["https://example.com/a.gif"]
ttl_seconds = 30
`)
	cfg, err := config.LoadAppConfig(path)
	gt.NoError(t, err).Required()
	gt.Number(t, cfg.Kiss.TTLSeconds).Equal(30)
}

func TestDefaultAppConfig(t *testing.T) {
	cfg := config.DefaultAppConfig()
	gt.NoError(t, cfg.Validate())
	gt.Bool(t, len(cfg.Kiss.Gifs) > 0).True()
}
