package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL    = "https://api.github.com/"
	DefaultMaxWorkers = 5
)

// Config holds the resolved CLI configuration.
type Config struct {
	BaseURL    string  `mapstructure:"base_url"`
	Token      string  `mapstructure:"token"`
	MaxWorkers int     `mapstructure:"max_workers"`
	RateLimit  float64 `mapstructure:"rate_limit"`
	Debug      bool    `mapstructure:"debug"`
	// TokenOrigin records where Token came from, for diagnostics only.
	TokenOrigin string `mapstructure:"-"`
}

// Options points Load at the optional files it reads.
type Options struct {
	EnvFile    string
	ConfigFile string
}

// tokenForHost is replaced in tests.
var tokenForHost = auth.TokenForHost

// Load merges, from highest precedence: flags, environment (after loading
// the .env file), the config file, the gh CLI credentials, defaults.
func Load(flags *pflag.FlagSet, opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("max_workers", DefaultMaxWorkers)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("debug", false)

	_ = v.BindEnv(append([]string{"token"}, tokenEnvVars...)...)
	_ = v.BindEnv("base_url", "GHCTL_BASE_URL")
	_ = v.BindEnv("max_workers", "GHCTL_MAX_WORKERS")
	_ = v.BindEnv("rate_limit", "GHCTL_RATE_LIMIT")
	_ = v.BindEnv("debug", "GHCTL_DEBUG")

	if flags != nil {
		for key, name := range map[string]string{
			"token":       "token",
			"base_url":    "base-url",
			"max_workers": "max-workers",
			"rate_limit":  "rate-limit",
			"debug":       "debug",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.TokenOrigin = tokenOrigin(v, flags)

	if cfg.Token == "" {
		host := ghHost(cfg.BaseURL)
		if token, source := tokenForHost(host); token != "" {
			slog.Debug("Using gh CLI credentials", "host", host, "source", source)
			cfg.Token = token
			cfg.TokenOrigin = source
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var tokenEnvVars = []string{"GHCTL_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"}

// tokenOrigin names the highest-precedence source that set the token, or ""
// when none did.
func tokenOrigin(v *viper.Viper, flags *pflag.FlagSet) string {
	if flags != nil && flags.Changed("token") {
		return "flag"
	}
	for _, name := range tokenEnvVars {
		if os.Getenv(name) != "" {
			return "env " + name
		}
	}
	if v.InConfig("token") && v.GetString("token") != "" {
		return "config file"
	}
	return ""
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("ghctl")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "ghctl"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Validate checks the merged values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("parameter GHCTL_BASE_URL or --base-url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("parameter GHCTL_MAX_WORKERS or --max-workers must be >= 1, got %d", c.MaxWorkers)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("parameter GHCTL_RATE_LIMIT or --rate-limit must be >= 0, got %v", c.RateLimit)
	}
	return nil
}

// ghHost maps an API base URL to the host gh stores credentials under.
func ghHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "github.com"
	}
	host := strings.ToLower(u.Hostname())
	if host == "api.github.com" {
		return "github.com"
	}
	return host
}
