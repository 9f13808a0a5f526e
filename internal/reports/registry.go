package reports

import (
	"fmt"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Definition)
	order    []string
	mu       sync.RWMutex
)

// Register adds a report definition to the catalog. Catalog listings keep
// registration order.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[def.Name]; !exists {
		order = append(order, def.Name)
	}
	registry[def.Name] = def
}

// Get retrieves a report definition by name.
func Get(name string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown report: %s (available: %s)",
			name, strings.Join(order, ", "))
	}
	return def, nil
}

// List returns all registered report names in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// All returns all registered report definitions in registration order.
func All() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	defs := make([]Definition, 0, len(order))
	for _, name := range order {
		defs = append(defs, registry[name])
	}
	return defs
}
