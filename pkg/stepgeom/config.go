package stepgeom

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// SettingsName is the settings file we look for in the working
// directory, without its extension. Viper works out the format.
const SettingsName = "stepgeom"

// Config is a mix of the settings file and the command line. The
// command line wins.
type Config struct {
	// directory with <NtC>.cif reference conformers
	Refs string `mapstructure:"refs"`

	// highest model number to read, -1 for all of them
	Model int `mapstructure:"model"`

	// chains to read, all of them if empty
	Chains []string `mapstructure:"chain"`

	// debug, info, warn or error
	LogLevel string `mapstructure:"log-level"`

	// output file, standard output if empty or "-"
	Out string `mapstructure:"out"`

	// number of files read at once
	Jobs int `mapstructure:"jobs"`

	// only report the closest reference for each step
	Best bool `mapstructure:"best"`
}

// NewConfig returns a Config filled from viper.
func NewConfig() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode settings: %w", err)
	}
	return c, nil
}

// readSettings reads the settings file named on the command line or,
// failing that, stepgeom.yaml or similar in the working directory. A
// missing default file is not an error.
func readSettings(fname string) error {
	if fname != "" {
		viper.SetConfigFile(fname)
		return viper.ReadInConfig()
	}
	viper.SetConfigName(SettingsName)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// parseLevel turns a level name into a slog level.
func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// setupLogging sends structured logs to standard error.
func setupLogging(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
	return nil
}
