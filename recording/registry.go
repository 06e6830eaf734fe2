package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownBackend is returned by NewBackend for names that were never
// registered.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// BackendFactory creates a fresh backend for one Playback.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[string]BackendFactory)
)

// Register makes a backend available to NewBackend under name. Backend
// packages call it from init, so importing one for its side effect is
// enough:
//
//	import _ "github.com/gogpu/ggchart/recording/backends/raster"
//
// Register panics if factory is nil or name is already taken.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("recording: nil factory for backend " + name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := factories[name]; dup {
		panic("recording: backend " + name + " registered twice")
	}
	factories[name] = factory
}

// NewBackend returns a new backend for name. The error for an unknown name
// lists the registered ones.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
	return factory(), nil
}

// Backends returns the registered names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

// IsRegistered reports whether name has a backend.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
