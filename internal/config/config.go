package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "HOMEPLATE"
	defaultTimezone = "Asia/Kolkata"
)

type Config struct {
	Port      string          `mapstructure:"port"`
	Cosmic    CosmicConfig    `mapstructure:"cosmic"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type CosmicConfig struct {
	APIURL     string        `mapstructure:"api_url"`
	BucketSlug string        `mapstructure:"bucket_slug"`
	ReadKey    string        `mapstructure:"read_key"`
	WriteKey   string        `mapstructure:"write_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type DashboardConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. Environment keys are
// HOMEPLATE_ prefixed with dots replaced by underscores
// (HOMEPLATE_COSMIC_READ_KEY). The unprefixed COSMIC_* variables and PORT
// are honoured too.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range map[string]string{
		"port":               "PORT",
		"cosmic.bucket_slug": "COSMIC_BUCKET_SLUG",
		"cosmic.read_key":    "COSMIC_READ_KEY",
		"cosmic.write_key":   "COSMIC_WRITE_KEY",
	} {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("cosmic.api_url", "https://api.cosmicjs.com/v3")
	v.SetDefault("cosmic.bucket_slug", "")
	v.SetDefault("cosmic.read_key", "")
	v.SetDefault("cosmic.write_key", "")
	v.SetDefault("cosmic.timeout", "10s")
	v.SetDefault("dashboard.timezone", defaultTimezone)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Cosmic.BucketSlug == "" {
		errs = append(errs, errors.New("cosmic.bucket_slug is required"))
	}
	if c.Cosmic.ReadKey == "" {
		errs = append(errs, errors.New("cosmic.read_key is required"))
	}
	if c.Cosmic.Timeout <= 0 {
		errs = append(errs, errors.New("cosmic.timeout must be positive"))
	}
	if _, err := loadLocation(c.Dashboard.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("dashboard.timezone %q is not a known time zone", c.Dashboard.Timezone))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// DashboardLocation returns the time zone the dashboard counts "today" in.
// Set dashboard.timezone to UTC to count against the UTC calendar date.
// An unknown zone (only reachable without Validate) yields UTC.
func (c *Config) DashboardLocation() *time.Location {
	loc, err := loadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = defaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback when tzdata is unavailable.
		if name == defaultTimezone {
			return time.FixedZone("IST", 5*3600+30*60), nil
		}
		return nil, err
	}
	return loc, nil
}
