package config

import (
	"time"

	"github.com/spf13/pflag"
)

// FetchConfig holds configuration for the fetch command.
type FetchConfig struct {
	ExplorerURL    string
	ExplorerAPIKey string
	RPCURL         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	LogLevel       string
	Engine         EngineSettings
}

// LoadFetch merges config file, environment variables, and flags into FetchConfig.
func LoadFetch(cfgFile string, flags *pflag.FlagSet) (FetchConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return FetchConfig{}, err
	}

	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	engine, err := loadEngineSettings(v)
	if err != nil {
		return FetchConfig{}, err
	}

	return FetchConfig{
		ExplorerURL:    v.GetString("explorer-url"),
		ExplorerAPIKey: v.GetString("explorer-api-key"),
		RPCURL:         v.GetString("rpc"),
		Timeout:        v.GetDuration("timeout"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBackoff:   v.GetDuration("retry-backoff"),
		LogLevel:       v.GetString("log-level"),
		Engine:         engine,
	}, nil
}
