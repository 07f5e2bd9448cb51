package config

import (
	"github.com/spf13/pflag"
)

// BatchConfig holds configuration for the batch command.
type BatchConfig struct {
	In       string
	Out      string
	Errors   string
	PGDSN    string
	LogLevel string
	Engine   EngineSettings
}

// LoadBatch merges config file, environment variables, and flags into BatchConfig.
func LoadBatch(cfgFile string, flags *pflag.FlagSet) (BatchConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return BatchConfig{}, err
	}

	v.SetDefault("out", "./data/deployments.jsonl")
	v.SetDefault("errors", "./data/decode_failures.jsonl")
	v.SetDefault("log-level", "info")

	engine, err := loadEngineSettings(v)
	if err != nil {
		return BatchConfig{}, err
	}

	return BatchConfig{
		In:       v.GetString("in"),
		Out:      v.GetString("out"),
		Errors:   v.GetString("errors"),
		PGDSN:    v.GetString("pg-dsn"),
		LogLevel: v.GetString("log-level"),
		Engine:   engine,
	}, nil
}
