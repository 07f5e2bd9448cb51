package config

import (
	"github.com/spf13/pflag"
)

// DecodeConfig holds configuration for the decode command.
type DecodeConfig struct {
	Input     string
	InputFile string
	Sender    string
	LogLevel  string
	Engine    EngineSettings
}

// LoadDecode merges config file, environment variables, and flags into DecodeConfig.
func LoadDecode(cfgFile string, flags *pflag.FlagSet) (DecodeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return DecodeConfig{}, err
	}

	v.SetDefault("log-level", "info")

	engine, err := loadEngineSettings(v)
	if err != nil {
		return DecodeConfig{}, err
	}

	return DecodeConfig{
		Input:     v.GetString("input"),
		InputFile: v.GetString("input-file"),
		Sender:    v.GetString("sender"),
		LogLevel:  v.GetString("log-level"),
		Engine:    engine,
	}, nil
}
