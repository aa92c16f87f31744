// Package config loads medroster settings from defaults, an optional YAML
// file and MEDROSTER_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/medroster"
	"github.com/fwojciec/medroster/crawl"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "MEDROSTER"

// Config holds all application configuration.
type Config struct {
	DB     DBConfig
	Scrape ScrapeConfig
	Clean  CleanConfig
	Log    LogConfig
}

// DBConfig holds SQLite settings.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// ScrapeConfig holds crawl settings.
type ScrapeConfig struct {
	Concurrency       int             `mapstructure:"concurrency"`
	FetchTimeout      time.Duration   `mapstructure:"fetch_timeout"`
	RequestsPerSecond float64         `mapstructure:"requests_per_second"`
	RetryDelays       []time.Duration `mapstructure:"retry_delays"`
	CheckpointEvery   int             `mapstructure:"checkpoint_every"`
	MaxPages          int             `mapstructure:"max_pages"`
	ProfileMarker     string          `mapstructure:"profile_marker"`

	// HostRates overrides RequestsPerSecond per host. The file and the
	// environment both list "host=rps" entries; a YAML mapping is not used
	// because hosts contain dots, which are key separators.
	HostRates map[string]float64 `mapstructure:"host_rates"`
}

// CleanConfig holds pipeline settings.
type CleanConfig struct {
	// Vocabulary is an optional YAML file layered over the built-in tables.
	Vocabulary string   `mapstructure:"vocabulary"`
	Countries  []string `mapstructure:"countries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var envKeys = []string{
	"db.path",
	"scrape.concurrency",
	"scrape.fetch_timeout",
	"scrape.requests_per_second",
	"scrape.host_rates",
	"scrape.retry_delays",
	"scrape.checkpoint_every",
	"scrape.max_pages",
	"scrape.profile_marker",
	"clean.vocabulary",
	"clean.countries",
	"log.level",
}

// Load reads configuration. path names an optional YAML file; an empty
// path skips the file. A named file that does not exist is ENOTFOUND.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.path", "")

	v.SetDefault("scrape.concurrency", 4)
	v.SetDefault("scrape.fetch_timeout", "30s")
	v.SetDefault("scrape.requests_per_second", crawl.DefaultRequestsPerSecond)
	v.SetDefault("scrape.host_rates", "")
	v.SetDefault("scrape.retry_delays", "1s,2s,4s")
	v.SetDefault("scrape.checkpoint_every", 25)
	v.SetDefault("scrape.max_pages", 500)
	v.SetDefault("scrape.profile_marker", "/doctors/")

	v.SetDefault("clean.vocabulary", "")
	v.SetDefault("clean.countries", strings.Join(medroster.DefaultCountries, ","))

	v.SetDefault("log.level", "info")

	for _, key := range envKeys {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, medroster.Errorf(medroster.ENOTFOUND, "config file not found: %s", path)
			}
			return nil, medroster.Errorf(medroster.EINVALID, "read config %s: %v", path, err)
		}
	}

	delays, err := durations(stringList(v, "scrape.retry_delays"))
	if err != nil {
		return nil, medroster.Errorf(medroster.EINVALID, "scrape.retry_delays: %v", err)
	}

	hostRates, err := rates(stringList(v, "scrape.host_rates"))
	if err != nil {
		return nil, medroster.Errorf(medroster.EINVALID, "scrape.host_rates: %v", err)
	}

	cfg := &Config{
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		Scrape: ScrapeConfig{
			Concurrency:       v.GetInt("scrape.concurrency"),
			FetchTimeout:      v.GetDuration("scrape.fetch_timeout"),
			RequestsPerSecond: v.GetFloat64("scrape.requests_per_second"),
			HostRates:         hostRates,
			RetryDelays:       delays,
			CheckpointEvery:   v.GetInt("scrape.checkpoint_every"),
			MaxPages:          v.GetInt("scrape.max_pages"),
			ProfileMarker:     v.GetString("scrape.profile_marker"),
		},
		Clean: CleanConfig{
			Vocabulary: v.GetString("clean.vocabulary"),
			Countries:  stringList(v, "clean.countries"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	switch {
	case c.Scrape.Concurrency < 1:
		return medroster.Errorf(medroster.EINVALID, "scrape.concurrency must be at least 1")
	case c.Scrape.FetchTimeout <= 0:
		return medroster.Errorf(medroster.EINVALID, "scrape.fetch_timeout must be positive")
	case c.Scrape.RequestsPerSecond <= 0:
		return medroster.Errorf(medroster.EINVALID, "scrape.requests_per_second must be positive")
	case c.Scrape.CheckpointEvery < 0:
		return medroster.Errorf(medroster.EINVALID, "scrape.checkpoint_every must be non-negative")
	case c.Scrape.MaxPages < 1:
		return medroster.Errorf(medroster.EINVALID, "scrape.max_pages must be at least 1")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return medroster.Errorf(medroster.EINVALID, "log.level must be one of: debug, info, warn, error")
	}
	return nil
}

// stringList accepts either a YAML sequence or a comma-separated string,
// the only shape an environment variable can take.
func stringList(v *viper.Viper, key string) []string {
	var parts []string
	switch raw := v.Get(key).(type) {
	case string:
		parts = strings.Split(raw, ",")
	case []string:
		parts = raw
	case []any:
		for _, p := range raw {
			parts = append(parts, fmt.Sprint(p))
		}
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func durations(values []string) ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(values))
	for _, s := range values {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			return nil, fmt.Errorf("negative delay %s", s)
		}
		out = append(out, d)
	}
	return out, nil
}

// rates parses "host=rps" entries.
func rates(values []string) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for _, s := range values {
		host, value, ok := strings.Cut(s, "=")
		host = strings.TrimSpace(host)
		if !ok || host == "" {
			return nil, fmt.Errorf("%q is not host=rps", s)
		}
		rps, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("rate for %s must be a positive number", host)
		}
		out[host] = rps
	}
	return out, nil
}
