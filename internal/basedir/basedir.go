// Package basedir resolves the user's home directory and tinyserve-managed
// configuration paths.
package basedir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName     = "tinyserve"
	configsDir  = "configs"
	aliasesFile = "aliases.json"
	dirPerm     = 0o755
)

// userHomeDir is swapped in tests to simulate a host without a home directory.
var userHomeDir = os.UserHomeDir

// HomeProvider reports the current user's home directory.
type HomeProvider interface {
	HomeDir() (string, error)
}

// HomeFunc adapts a plain function to HomeProvider.
type HomeFunc func() (string, error)

// HomeDir calls f.
func (f HomeFunc) HomeDir() (string, error) {
	return f()
}

// StaticHome is a HomeProvider that always answers with the same directory.
// An empty StaticHome reports ErrHomeUndetermined.
type StaticHome string

// HomeDir returns h.
func (h StaticHome) HomeDir() (string, error) {
	if h == "" {
		return "", ErrHomeUndetermined
	}
	return string(h), nil
}

type osHome struct{}

// OSHome returns the default HomeProvider. It honours the process-wide
// override set with SetHomeOverride before asking the operating system.
func OSHome() HomeProvider {
	return osHome{}
}

func (osHome) HomeDir() (string, error) {
	if dir, ok := lookupHomeOverride(); ok {
		return dir, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeUndetermined, err)
	}
	if home == "" {
		return "", ErrHomeUndetermined
	}
	return home, nil
}

// Locator computes tinyserve's configuration paths relative to a home
// directory supplied by its HomeProvider.
type Locator struct {
	home HomeProvider
}

// New returns a Locator. A nil provider falls back to OSHome.
func New(home HomeProvider) *Locator {
	if home == nil {
		home = OSHome()
	}
	return &Locator{home: home}
}

// HomeDir returns the home directory reported by the locator's provider.
func (l *Locator) HomeDir() (string, error) {
	return l.home.HomeDir()
}

// ConfigDir returns <home>/.tinyserve/configs without touching the disk.
func (l *Locator) ConfigDir() (string, error) {
	home, err := l.home.HomeDir()
	if err != nil {
		return "", err
	}
	return ConfigDirFor(home)
}

// EnsureConfigDir creates the config directory if needed and returns it.
func (l *Locator) EnsureConfigDir() (string, error) {
	dir, err := l.ConfigDir()
	if err != nil {
		return "", err
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// AliasesFile returns the path of aliases.json inside the config directory.
func (l *Locator) AliasesFile() (string, error) {
	dir, err := l.ConfigDir()
	if err != nil {
		return "", err
	}
	return AliasesFileIn(dir), nil
}

// ConfigDirFor returns the config directory for the given home directory.
// An empty home means the home directory could not be determined.
func ConfigDirFor(home string) (string, error) {
	if home == "" {
		return "", ErrHomeUndetermined
	}
	return filepath.Join(home, "."+appName, configsDir), nil
}

// AliasesFileIn returns the aliases file path under the given config directory.
func AliasesFileIn(configDir string) string {
	return filepath.Join(configDir, aliasesFile)
}

// EnsureDir creates path and any missing parents. An existing directory is
// left untouched.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return &DirError{Path: path, Err: err}
	}
	return nil
}

// DefaultConfigDir returns the config directory for the OS-resolved home.
func DefaultConfigDir() (string, error) {
	return New(nil).ConfigDir()
}

// EnsureDefaultConfigDir creates the default config directory if needed and
// returns it.
func EnsureDefaultConfigDir() (string, error) {
	return New(nil).EnsureConfigDir()
}
