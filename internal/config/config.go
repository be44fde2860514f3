// Package config loads pacer's application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: PACER_DB_PATH -> db.path.
const EnvPrefix = "PACER_"

const maxConfigFileSize = 1 << 20

// DefaultPoll is the snapshot reload interval used when NATS is not configured.
const DefaultPoll = 30 * time.Second

type Config struct {
	DB       DBConfig       `koanf:"db"`
	User     UserConfig     `koanf:"user"`
	Reminder ReminderConfig `koanf:"reminder"`
	Log      LogConfig      `koanf:"log"`
	NATS     NATSConfig     `koanf:"nats"`
	HTTP     HTTPConfig     `koanf:"http"`
	Calendar CalendarConfig `koanf:"calendar"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type UserConfig struct {
	ID       string `koanf:"id"`
	Timezone string `koanf:"timezone"`
}

type ReminderConfig struct {
	Tick time.Duration `koanf:"tick"`
	// Poll of zero disables periodic snapshot reloads. It defaults to
	// DefaultPoll unless NATS supplies change events.
	Poll time.Duration `koanf:"poll"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// NATSConfig is optional; an empty URL keeps pacer fully local.
type NATSConfig struct {
	URL string `koanf:"url"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

type CalendarConfig struct {
	Credentials string `koanf:"credentials"`
	Token       string `koanf:"token"`
	ID          string `koanf:"id"`
}

// Dir is pacer's home directory, ~/.pacer.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".pacer"), nil
}

// Load reads the YAML file at path (default ~/.pacer/config.yaml), then
// applies PACER_* environment overrides and defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = filepath.Join(dir, "config.yaml")
	}

	var content []byte
	if info, err := os.Stat(path); err == nil {
		if info.Size() > maxConfigFileSize {
			return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
		}
		if content, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	cfg, err := parse(content)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	applyDefaults(cfg, dir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func parse(content []byte) (*Config, error) {
	k := koanf.New(".")
	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps PACER_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func applyDefaults(cfg *Config, dir string) {
	if cfg.DB.Path == "" {
		cfg.DB.Path = filepath.Join(dir, "pacer.db")
	}
	if cfg.User.ID == "" {
		cfg.User.ID = "local"
	}
	if cfg.User.Timezone == "" {
		cfg.User.Timezone = "Local"
	}
	if cfg.Reminder.Tick == 0 {
		cfg.Reminder.Tick = time.Minute
	}
	if cfg.Reminder.Poll == 0 && cfg.NATS.URL == "" {
		cfg.Reminder.Poll = DefaultPoll
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "127.0.0.1:8787"
	}
	if cfg.Calendar.Credentials == "" {
		cfg.Calendar.Credentials = filepath.Join(dir, "credentials.json")
	}
	if cfg.Calendar.Token == "" {
		cfg.Calendar.Token = filepath.Join(dir, "token.json")
	}
	if cfg.Calendar.ID == "" {
		cfg.Calendar.ID = "primary"
	}
}

func (c *Config) Validate() error {
	if strings.ContainsAny(c.User.ID, ". *>") {
		return fmt.Errorf("user.id %q must not contain spaces, dots or NATS wildcards", c.User.ID)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Reminder.Tick < time.Second {
		return fmt.Errorf("reminder.tick must be at least 1s, got %s", c.Reminder.Tick)
	}
	if c.Reminder.Poll < 0 {
		return fmt.Errorf("reminder.poll must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// Location resolves user.timezone; all dates and reminders use it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.User.Timezone)
	if err != nil {
		return nil, fmt.Errorf("user.timezone %q: %w", c.User.Timezone, err)
	}
	return loc, nil
}
