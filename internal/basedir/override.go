package basedir

import "sync"

// The home override is process-wide so embedding hosts and tests can redirect
// OSHome without threading a provider through every call site. Prefer passing
// a HomeProvider to New. Tests that set it must not run in parallel.
var (
	overrideMu   sync.Mutex
	homeOverride string
)

// SetHomeOverride makes OSHome report dir as the home directory. An empty dir
// clears the override.
func SetHomeOverride(dir string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	homeOverride = dir
}

// ClearHomeOverride restores OS home directory resolution.
func ClearHomeOverride() {
	SetHomeOverride("")
}

// ResolveHomeDirectory returns the override if set, otherwise the OS home
// directory. It reports false when neither is available.
func ResolveHomeDirectory() (string, bool) {
	home, err := OSHome().HomeDir()
	if err != nil {
		return "", false
	}
	return home, true
}

func lookupHomeOverride() (string, bool) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	return homeOverride, homeOverride != ""
}
