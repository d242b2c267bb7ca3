// Package aliases resolves the many user-facing spellings of an option key
// (showDir, show-dir, SHOW_DIR, ...) to one canonical key.
//
// Alias data is a JSON object mapping each canonical key to its aliases:
//
//	{
//	  "showDir": ["showDir", "show-dir"],
//	  "weakEtags": ["weak-etags"]
//	}
//
// Lookups compare spellings by their Normalize form through an index that is
// built once per Table, on first use.
package aliases

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/keys-i/tinyserve/internal/basedir"
)

const (
	bytesSource  = "<bytes>"
	readerSource = "<reader>"
)

// Table maps canonical keys to their aliases. A Table is immutable and safe
// for concurrent use.
type Table struct {
	source  string
	entries map[string][]string
	index   func() map[string]string
}

// Conflict is a normalized spelling claimed by more than one canonical key.
type Conflict struct {
	Normalized string   `json:"normalized"`
	Keys       []string `json:"keys"`
	Winner     string   `json:"winner"`
}

// FromBytes parses JSON alias data.
func FromBytes(data []byte) (*Table, error) {
	return parse(bytesSource, data)
}

// FromReader reads r to the end and parses it as JSON alias data.
func FromReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Path: readerSource, Err: err}
	}
	return parse(readerSource, data)
}

// FromFile loads alias data from the JSON file at path.
func FromFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return parse(path, data)
}

// FromDefaultLocation loads aliases.json from the locator's config
// directory, creating the directory if it does not exist. A nil locator uses
// the OS home directory.
func FromDefaultLocation(loc *basedir.Locator) (*Table, error) {
	if loc == nil {
		loc = basedir.New(nil)
	}
	dir, err := loc.EnsureConfigDir()
	if err != nil {
		return nil, err
	}
	return FromFile(basedir.AliasesFileIn(dir))
}

func parse(source string, data []byte) (*Table, error) {
	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if entries == nil {
		return nil, &ParseError{Source: source, Err: errors.New("expected a JSON object of canonical key to alias list")}
	}
	return newTable(source, entries), nil
}

func newTable(source string, entries map[string][]string) *Table {
	t := &Table{source: source, entries: entries}
	t.index = sync.OnceValue(t.buildIndex)
	return t
}

// Source describes where the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of canonical keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Canonical returns the canonical keys in ascending order.
func (t *Table) Canonical() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Aliases returns a copy of the aliases declared for canonical.
func (t *Table) Aliases(canonical string) []string {
	return slices.Clone(t.entries[canonical])
}

// Index returns the normalized spelling -> canonical key lookup, building it
// on first call. Every call returns the same map; callers must not modify it.
//
// Canonical keys are processed in ascending order and aliases in declaration
// order, so when two keys claim the same normalized spelling the later one
// wins. Use Conflicts to detect that situation.
func (t *Table) Index() map[string]string {
	return t.index()
}

func (t *Table) buildIndex() map[string]string {
	idx := make(map[string]string)
	for _, canonical := range t.Canonical() {
		idx[Normalize(canonical)] = canonical
		for _, alias := range t.entries[canonical] {
			idx[Normalize(alias)] = canonical
		}
	}
	return idx
}

// Resolve returns the canonical key for any spelling of key. Unknown keys
// report false.
func (t *Table) Resolve(key string) (string, bool) {
	canonical, ok := t.Index()[Normalize(key)]
	return canonical, ok
}

// Conflicts lists every normalized spelling that more than one canonical key
// claims, sorted by normalized form.
func (t *Table) Conflicts() []Conflict {
	claims := make(map[string][]string)
	for _, canonical := range t.Canonical() {
		spellings := append([]string{canonical}, t.entries[canonical]...)
		for _, s := range spellings {
			n := Normalize(s)
			if !slices.Contains(claims[n], canonical) {
				claims[n] = append(claims[n], canonical)
			}
		}
	}

	idx := t.Index()
	var conflicts []Conflict
	for n, keys := range claims {
		if len(keys) < 2 {
			continue
		}
		conflicts = append(conflicts, Conflict{Normalized: n, Keys: keys, Winner: idx[n]})
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Normalized < conflicts[j].Normalized
	})
	return conflicts
}
