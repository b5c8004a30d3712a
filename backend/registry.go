package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/traceplot"
)

// Factory opens an offscreen device sized width x height.
type Factory func(width, height int) (Offscreen, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first that opens wins).
	backendPriority = []string{WGPU, Software}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens the named backend.
func Open(name string, width, height int) (Offscreen, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	return factory(width, height)
}

// Default opens the best available backend based on priority.
// Priority order: wgpu > software. A backend whose factory fails is skipped.
func Default(width, height int) (Offscreen, string, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		factory, ok := backends[name]
		if !ok {
			continue
		}
		dev, err := factory(width, height)
		if err != nil {
			traceplot.Logger().Debug("backend: skipped", "name", name, "err", err)
			continue
		}
		return dev, name, nil
	}
	return nil, "", ErrBackendNotAvailable
}
