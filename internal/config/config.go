package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/churrascode/churrasco/internal/event"
	"github.com/churrascode/churrasco/internal/payments"
	"github.com/churrascode/churrasco/internal/refresh"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved runtime configuration. Paths are absolute.
type Config struct {
	EventDate     string
	EventTime     string
	EventTimezone string

	PaymentMonths []string
	PaymentValue  payments.Cents
	DatabasePath  string
	Table         string

	ItemsPath string
	SeedPath  string

	RefreshInterval time.Duration

	LogFile  string
	LogLevel string
}

const (
	defaultConfigPath = "~/.config/churrasco/config.toml"
	defaultDataDir    = "~/.local/share/churrasco"
	defaultEventDate  = "2025-12-06"
	defaultEventTime  = "16:00"
	defaultTimezone   = "America/Sao_Paulo"
	defaultTable      = "pagamentos"
	defaultLogLevel   = "info"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() Config {
	return Config{
		EventDate:       defaultEventDate,
		EventTime:       defaultEventTime,
		EventTimezone:   defaultTimezone,
		PaymentMonths:   append([]string(nil), payments.DefaultMonths...),
		PaymentValue:    payments.DefaultMonthlyFee,
		DatabasePath:    mustExpand(defaultDataDir + "/pagamentos.db"),
		Table:           defaultTable,
		ItemsPath:       mustExpand(defaultDataDir + "/data.json"),
		SeedPath:        mustExpand(defaultDataDir + "/seed_data.json"),
		RefreshInterval: refresh.DefaultInterval,
		LogFile:         mustExpand(defaultDataDir + "/churrasco.log"),
		LogLevel:        defaultLogLevel,
	}
}

type fileConfig struct {
	Event struct {
		Date     string `toml:"date"`
		Time     string `toml:"time"`
		Timezone string `toml:"timezone"`
	} `toml:"event"`
	Payments struct {
		Months   []string `toml:"months"`
		Value    string   `toml:"value"`
		Database string   `toml:"database"`
		Table    string   `toml:"table"`
	} `toml:"payments"`
	Items struct {
		Path string `toml:"path"`
		Seed string `toml:"seed"`
	} `toml:"items"`
	RefreshSeconds int `toml:"refresh_seconds"`

	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// Load reads the config file at path (or the default location), applies
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := Default()
	if err := cfg.apply(raw, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(raw fileConfig, lookup func(string) (string, bool)) error {
	setString(&c.EventDate, raw.Event.Date)
	setString(&c.EventTime, raw.Event.Time)
	setString(&c.EventTimezone, raw.Event.Timezone)
	setString(&c.Table, raw.Payments.Table)
	setString(&c.LogLevel, raw.Log.Level)
	setPath(&c.DatabasePath, raw.Payments.Database)
	setPath(&c.ItemsPath, raw.Items.Path)
	setPath(&c.SeedPath, raw.Items.Seed)
	setPath(&c.LogFile, raw.Log.File)
	if months := cleanList(raw.Payments.Months); len(months) > 0 {
		c.PaymentMonths = months
	}
	if raw.RefreshSeconds > 0 {
		c.RefreshInterval = time.Duration(raw.RefreshSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.Payments.Value); v != "" {
		cents, err := payments.ParseAmount(v)
		if err != nil {
			return fmt.Errorf("payments.value: %w", err)
		}
		c.PaymentValue = cents
	}

	env := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return v
	}
	setString(&c.EventDate, env("EVENT_DATE"))
	setString(&c.EventTime, env("EVENT_TIME"))
	setString(&c.EventTimezone, env("EVENT_TZ"))
	setString(&c.Table, env("DB_TABLE"))
	setString(&c.LogLevel, env("LOG_LEVEL"))
	setPath(&c.DatabasePath, env("DB_PATH"))
	setPath(&c.ItemsPath, env("JSON_PATH"))
	setPath(&c.SeedPath, env("SEED_PATH"))
	setPath(&c.LogFile, env("LOG_FILE"))
	if months := cleanList(strings.Split(env("PAYMENT_MONTHS"), ",")); len(months) > 0 {
		c.PaymentMonths = months
	}
	if v := strings.TrimSpace(env("PAYMENT_VALUE")); v != "" {
		cents, err := payments.ParseAmount(v)
		if err != nil {
			return fmt.Errorf("PAYMENT_VALUE: %w", err)
		}
		c.PaymentValue = cents
	}
	if v := strings.TrimSpace(env("REFRESH_SECONDS")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("REFRESH_SECONDS: invalid value %q", v)
		}
		c.RefreshInterval = time.Duration(secs) * time.Second
	}
	return nil
}

// Validate checks the fields that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if _, err := c.Event(); err != nil {
		return err
	}
	if len(c.PaymentMonths) == 0 {
		return errors.New("no payment months configured")
	}
	for _, m := range append([]string{c.Table}, c.PaymentMonths...) {
		if !payments.ValidIdentifier(m) {
			return fmt.Errorf("invalid column or table name %q", m)
		}
	}
	if c.PaymentValue <= 0 {
		return errors.New("payment value must be positive")
	}
	return nil
}

// Event parses the configured event start.
func (c Config) Event() (event.Event, error) {
	return event.Parse(c.EventDate, c.EventTime, c.EventTimezone)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setPath(dst *string, v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	*dst = mustExpand(v)
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
