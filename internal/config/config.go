// Package config resolves tinyserve's runtime settings from command-line
// flags and TINYSERVE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/keys-i/tinyserve/internal/aliases"
	"github.com/keys-i/tinyserve/internal/basedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every setting key to form its environment
	// variable, e.g. TINYSERVE_HOME.
	EnvPrefix = "TINYSERVE"

	// KeyHome overrides the home directory used to locate the config directory.
	KeyHome = "home"
	// KeyAliases points at an explicit aliases file.
	KeyAliases = "aliases"
	// KeyLogLevel sets the minimum log level.
	KeyLogLevel = "log-level"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

// Settings holds the resolved runtime settings.
type Settings struct {
	Home        string
	AliasesFile string
	LogLevel    string
}

// New returns a viper instance that reads TINYSERVE_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	return v
}

// BindFlags registers the settings flags on flags and binds them to v.
// Flags take precedence over environment variables.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String(KeyHome, "", "Override the home directory used to locate the config directory")
	flags.String(KeyAliases, "", "Load aliases from this file instead of the config directory")
	flags.String(KeyLogLevel, DefaultLogLevel, "Log level: debug, info, warn, error")

	for _, key := range []string{KeyHome, KeyAliases, KeyLogLevel} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the current settings from v.
func Load(v *viper.Viper) Settings {
	return Settings{
		Home:        v.GetString(KeyHome),
		AliasesFile: v.GetString(KeyAliases),
		LogLevel:    v.GetString(KeyLogLevel),
	}
}

// Locator returns a config locator honouring the home override, if any.
func (s Settings) Locator() *basedir.Locator {
	if s.Home != "" {
		return basedir.New(basedir.StaticHome(s.Home))
	}
	return basedir.New(nil)
}

// AliasesPath returns the aliases file that LoadAliases reads.
func (s Settings) AliasesPath() (string, error) {
	if s.AliasesFile != "" {
		return s.AliasesFile, nil
	}
	return s.Locator().AliasesFile()
}

// LoadAliases loads the explicit aliases file if one is configured, otherwise
// aliases.json from the config directory.
func (s Settings) LoadAliases() (*aliases.Table, error) {
	if s.AliasesFile != "" {
		return aliases.FromFile(s.AliasesFile)
	}
	return aliases.FromDefaultLocation(s.Locator())
}
