// Package config resolves runtime settings from defaults, an optional config file,
// the environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-insights/internal/gateway"
)

const (
	// EnvPrefix prefixes every environment variable read through viper.
	EnvPrefix = "GITHUB_INSIGHTS"
	// FileName is the config file looked up in the working and home directories.
	FileName = ".github-insights"

	DefaultDays        = 30
	DefaultBranchLimit = 10
	DefaultHTTPAddr    = ":8080"
)

// Config is the resolved configuration.
type Config struct {
	Token   string
	APIURL  string
	Verbose bool

	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PoolTimeout       time.Duration
	RateLimitMaxSleep time.Duration

	HTTPAddr    string
	Days        int
	BranchLimit int
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	defaults := gateway.DefaultOptions("")
	v.SetDefault("token", "")
	v.SetDefault("api_url", "")
	v.SetDefault("verbose", false)
	v.SetDefault("timeouts.connect", defaults.ConnectTimeout)
	v.SetDefault("timeouts.read", defaults.ReadTimeout)
	v.SetDefault("timeouts.write", defaults.WriteTimeout)
	v.SetDefault("timeouts.pool", defaults.PoolTimeout)
	v.SetDefault("rate_limit.max_sleep", time.Duration(0))
	v.SetDefault("server.http_addr", DefaultHTTPAddr)
	v.SetDefault("defaults.days", DefaultDays)
	v.SetDefault("defaults.branch_limit", DefaultBranchLimit)
}

// Init prepares v to read the config file and the environment.
// configFile overrides the default lookup when not empty. A .env file in the
// working directory is loaded into the process environment first, when present.
func Init(v *viper.Viper, configFile string) {
	_ = godotenv.Load()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// The conventional GitHub variables are honoured without the prefix.
	_ = v.BindEnv("token", EnvPrefix+"_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("api_url", EnvPrefix+"_API_URL", "GITHUB_API_URL")

	SetDefaults(v)
}

// Load reads the config file, if any, and returns the resolved configuration.
// A missing default config file is not an error; an explicit one that cannot be read is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Token:             strings.TrimSpace(v.GetString("token")),
		APIURL:            v.GetString("api_url"),
		Verbose:           v.GetBool("verbose"),
		ConnectTimeout:    v.GetDuration("timeouts.connect"),
		ReadTimeout:       v.GetDuration("timeouts.read"),
		WriteTimeout:      v.GetDuration("timeouts.write"),
		PoolTimeout:       v.GetDuration("timeouts.pool"),
		RateLimitMaxSleep: v.GetDuration("rate_limit.max_sleep"),
		HTTPAddr:          v.GetString("server.http_addr"),
		Days:              v.GetInt("defaults.days"),
		BranchLimit:       v.GetInt("defaults.branch_limit"),
	}
	if cfg.Days < 0 {
		return nil, fmt.Errorf("defaults.days must not be negative, got %d", cfg.Days)
	}
	if cfg.BranchLimit <= 0 {
		return nil, fmt.Errorf("defaults.branch_limit must be positive, got %d", cfg.BranchLimit)
	}
	return cfg, nil
}

// GatewayOptions converts the configuration into gateway options.
func (c *Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Token:             c.Token,
		APIURL:            c.APIURL,
		ConnectTimeout:    c.ConnectTimeout,
		ReadTimeout:       c.ReadTimeout,
		WriteTimeout:      c.WriteTimeout,
		PoolTimeout:       c.PoolTimeout,
		RateLimitMaxSleep: c.RateLimitMaxSleep,
	}
}
