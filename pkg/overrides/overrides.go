// Package overrides holds the manually curated side-table that supplies what
// the reference page only states in prose: argument types of methods, their
// return types, and the payload shapes of events.
//
// The table is configuration, not discovered data. It is read once at
// startup from TOML and never changes during a run:
//
//	[events]
//	popupClosed = '{button_id: string}'
//
//	[functions.WebApp.showPopup]
//	args = ['PopupParams', '(id: string) => void']
//
//	[functions.WebApp.onEvent]
//	full = 'onEvent<T extends keyof EventCallbacks>(...): void'
//
// [Default] returns the table shipped with the binary.
package overrides

import (
	"bytes"
	_ "embed"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

//go:embed overrides.toml
var defaultTable []byte

// Entry is the override for one method.
type Entry struct {
	// Args has one type per positional argument, in header order.
	Args []string `toml:"args"`

	// Return is the return type; empty means void.
	Return string `toml:"return"`

	// Full, when set, is used verbatim as the method declaration.
	Full string `toml:"full"`
}

type tableFile struct {
	Functions map[string]map[string]Entry `toml:"functions"`
	Events    map[string]string           `toml:"events"`
}

// Registry is a read-only lookup of method overrides and event payloads.
type Registry struct {
	functions map[schema.TypeName]map[string]Entry
	events    map[string]string
}

// New builds a Registry from in-memory tables. The maps are copied.
func New(functions map[schema.TypeName]map[string]Entry, events map[string]string) *Registry {
	r := &Registry{
		functions: make(map[schema.TypeName]map[string]Entry, len(functions)),
		events:    maps.Clone(events),
	}
	if r.events == nil {
		r.events = make(map[string]string)
	}
	for owner, fns := range functions {
		r.functions[owner] = maps.Clone(fns)
	}
	return r
}

// Default returns the registry embedded in the binary.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(defaultTable))
}

// DefaultTable returns a copy of the embedded TOML source.
func DefaultTable() []byte {
	return bytes.Clone(defaultTable)
}

// LoadFile reads a registry from a TOML file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOverrides, err, "open overrides %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a registry from TOML. Unknown keys are rejected so that a typo
// such as "arg" for "args" cannot silently drop an override.
func Load(r io.Reader) (*Registry, error) {
	var tf tableFile
	md, err := toml.NewDecoder(r).Decode(&tf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOverrides, err, "decode overrides")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidOverrides, "unknown keys: %s", strings.Join(keys, ", "))
	}

	functions := make(map[schema.TypeName]map[string]Entry, len(tf.Functions))
	for owner, fns := range tf.Functions {
		functions[schema.TypeName(owner)] = fns
	}
	reg := New(functions, tf.Events)
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Lookup returns the override for owner.fn. The returned Entry does not
// share memory with the registry.
func (r *Registry) Lookup(owner schema.TypeName, fn string) (Entry, bool) {
	e, ok := r.functions[owner][fn]
	if !ok {
		return Entry{}, false
	}
	e.Args = slices.Clone(e.Args)
	return e, true
}

// EventPayload returns the payload shape declared for an event.
func (r *Registry) EventPayload(event string) (string, bool) {
	shape, ok := r.events[event]
	return shape, ok
}

// Owners returns the owner types that have overrides, sorted.
func (r *Registry) Owners() []schema.TypeName {
	return slices.Sorted(maps.Keys(r.functions))
}

// Functions returns the overridden method names of owner, sorted.
func (r *Registry) Functions(owner schema.TypeName) []string {
	return slices.Sorted(maps.Keys(r.functions[owner]))
}

// Events returns the event names with a declared payload, sorted.
func (r *Registry) Events() []string {
	return slices.Sorted(maps.Keys(r.events))
}

// Validate checks that every name is an identifier, every method entry
// declares either args or a full signature, and no type string is blank.
func (r *Registry) Validate() error {
	for _, owner := range r.Owners() {
		if err := errors.ValidateIdentifier(string(owner)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOverrides, err, "owner %q", owner)
		}
		for _, fn := range r.Functions(owner) {
			if err := errors.ValidateIdentifier(fn); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidOverrides, err, "method %s.%s", owner, fn)
			}
			e := r.functions[owner][fn]
			if len(e.Args) == 0 && e.Full == "" && e.Return == "" {
				return errors.New(errors.ErrCodeInvalidOverrides, "%s.%s declares neither args, return nor full", owner, fn)
			}
			for i, a := range e.Args {
				if strings.TrimSpace(a) == "" {
					return errors.New(errors.ErrCodeInvalidOverrides, "%s.%s argument %d has an empty type", owner, fn, i)
				}
			}
		}
	}
	for _, ev := range r.Events() {
		if err := errors.ValidateIdentifier(ev); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOverrides, err, "event %q", ev)
		}
		if strings.TrimSpace(r.events[ev]) == "" {
			return errors.New(errors.ErrCodeInvalidOverrides, "event %s has an empty payload shape", ev)
		}
	}
	return nil
}
