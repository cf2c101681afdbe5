package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/odvcencio/furry-feed/store"
)

const (
	configFileName = "furryfeed"
	configFileType = "yaml"
	envPrefix      = "FURRYFEED"

	cfgKeyBackend   = "backend"
	cfgKeyFixtures  = "fixtures"
	cfgKeyDatabase  = "database"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFile   = "log_file"
	cfgKeyWatch     = "watch"
	cfgKeyCodeStyle = "code_style"

	defaultFixtures = "fixtures/**/*.yaml"
)

// settings is the resolved configuration shared by all subcommands.
type settings struct {
	Backend   store.Backend
	Fixtures  string
	Database  string
	LogLevel  slog.Level
	LogFile   string
	Watch     bool
	CodeStyle string

	// Logger writes at LogLevel to stderr, or to LogFile for commands that
	// own the terminal. Set once flags are parsed.
	Logger   *slog.Logger
	closeLog func() error
}

// loadConfig layers flags over env over furryfeed.yaml over defaults.
// A missing config file is only an error when path names one explicitly.
func loadConfig(flags *pflag.FlagSet, path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, string(store.BackendReducer))
	v.SetDefault(cfgKeyFixtures, defaultFixtures)
	v.SetDefault(cfgKeyDatabase, "")
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFile, "")
	v.SetDefault(cfgKeyWatch, true)
	v.SetDefault(cfgKeyCodeStyle, "monokai")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			cfgKeyBackend:  "backend",
			cfgKeyFixtures: "fixtures",
			cfgKeyDatabase: "database",
			cfgKeyLogLevel: "log-level",
			cfgKeyWatch:    "watch",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolve validates raw config values.
func resolve(v *viper.Viper) (settings, error) {
	backend, err := store.ParseBackend(v.GetString(cfgKeyBackend))
	if err != nil {
		return settings{}, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(cfgKeyLogLevel))); err != nil {
		return settings{}, fmt.Errorf("log level: %w", err)
	}
	return settings{
		Backend:   backend,
		Fixtures:  v.GetString(cfgKeyFixtures),
		Database:  v.GetString(cfgKeyDatabase),
		LogLevel:  level,
		LogFile:   v.GetString(cfgKeyLogFile),
		Watch:     v.GetBool(cfgKeyWatch),
		CodeStyle: v.GetString(cfgKeyCodeStyle),
	}, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
