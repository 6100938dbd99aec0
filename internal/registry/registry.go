// Package registry provides a global registry of solitaire variants.
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

// VariantInfo contains metadata about a registered variant.
type VariantInfo struct {
	ID           string
	Title        string
	Modes        []string
	Difficulties []string
}

// Factory creates a fresh Rules value for a variant.
type Factory func() solitaire.Rules

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]VariantInfo)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Typically called from a variant's init() function.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f

	r := f()
	infos[id] = VariantInfo{
		ID:           id,
		Title:        r.Title(),
		Modes:        r.Modes(),
		Difficulties: r.Difficulties(),
	}
}

// List returns information about all registered variants, sorted by ID.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]VariantInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the rules for a variant by its ID.
func Create(id string) (solitaire.Rules, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}

	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Info returns the metadata of a registered variant.
func Info(id string) (VariantInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
