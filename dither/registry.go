package dither

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Ditherer{}
)

func init() {
	Register("nearest", NearestNeighbor{})
	for _, k := range Kernels() {
		Register(k.Name, ErrorDiffusion{Kernel: k})
	}
	for _, m := range []Matrix{Bayer2x2, Bayer4x4, Bayer8x8} {
		Register(m.Name, Ordered{Matrix: m.Clone()})
	}
}

// Register makes d available under name. It panics if name is empty, d is
// nil or the name is already taken.
func Register(name string, d Ditherer) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		panic("dither: Register with empty name")
	}
	if d == nil {
		panic("dither: Register " + key + " with nil ditherer")
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[key]; dup {
		panic("dither: Register called twice for " + key)
	}
	registry[key] = d
}

// ByName looks up a strategy, ignoring case.
func ByName(name string) (Ditherer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return d, nil
}

// Names returns the registered strategy names in order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
