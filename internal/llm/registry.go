package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ProviderFactory builds a provider from its own environment configuration.
type ProviderFactory func() (Provider, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]ProviderFactory)
)

// RegisterProvider is called from provider packages' init functions.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Providers lists the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider builds the named provider. The provider package must be imported for its side
// effect of registering itself.
func NewProvider(name string) (Provider, error) {
	mu.RLock()
	factory, exists := factories[name]
	mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unsupported provider %q (registered: %s)", name, strings.Join(Providers(), ", "))
	}
	provider, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s provider: %w", name, err)
	}
	return provider, nil
}
