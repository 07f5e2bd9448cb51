package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"deployScope/internal/deploy"
)

// EngineSettings holds the immutable tables the decode engine is built from:
// the function ABI, the legacy positional layouts, and the address labels.
type EngineSettings struct {
	ABIPath  string
	Function string
	Labels   map[string]string
	Layouts  []deploy.LegacyLayout
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("DEPLOYSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadEngineSettings(v *viper.Viper) (EngineSettings, error) {
	settings := EngineSettings{
		ABIPath:  v.GetString("abi-path"),
		Function: v.GetString("function"),
		Labels:   v.GetStringMapString("labels"),
	}
	if settings.Function == "" {
		settings.Function = deploy.DeployTokenName
	}

	if v.IsSet("legacy-layouts") {
		var layouts []deploy.LegacyLayout
		if err := v.UnmarshalKey("legacy-layouts", &layouts); err != nil {
			return EngineSettings{}, fmt.Errorf("parse legacy layouts: %w", err)
		}
		settings.Layouts = layouts
	}

	return settings, nil
}
