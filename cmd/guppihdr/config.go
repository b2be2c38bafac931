package main

// this file contains all the code that directly uses the viper package
import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// logConfig controls the zap logger.
type logConfig struct {
	Level       string // debug, info, warn or error
	Development bool   // console encoding instead of JSON
}

// appConfig is everything guppihdr reads from guppihdr.toml, the
// environment (GUPPIHDR_LOG_LEVEL, ...) and flags.
type appConfig struct {
	Log    logConfig
	Output string // where `fits` writes records; "-" is stdout
}

// setDefaultConfig sets the values used when no config file is found.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("output", "-")
}

// loadConfig reads configuration from a file called 'guppihdr' (.toml,
// .yaml, ...), looking in /opt and then in the current directory, unless
// file names one explicitly.  Returns true if a config file was read.
func loadConfig(v *viper.Viper, file string, cfg *appConfig) (bool, error) {
	setDefaultConfig(v)
	v.SetEnvPrefix("GUPPIHDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("guppihdr") // name of config file (without extension)
		v.AddConfigPath("/opt")     // path to look for the config file in
		v.AddConfigPath(".")        // optionally look for config in the working directory
	}
	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return false, err
		}
		found = false
	}
	if err := v.Unmarshal(cfg); err != nil {
		return found, err
	}
	return found, nil
}
