package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Registry tracks the extensions registered on one Application.
type Registry struct {
	mu            sync.RWMutex
	registrations map[string]*Registration
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]*Registration),
	}
}

// Register records reg. Returns an error if the name is already registered.
func (r *Registry) Register(reg *Registration) error {
	if reg == nil {
		return fmt.Errorf("cannot register nil extension")
	}
	if reg.Name == "" {
		return fmt.Errorf("extension name is required")
	}
	if err := reg.Metadata.Validate(); err != nil {
		return fmt.Errorf("invalid metadata for extension %s: %w", reg.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[reg.Name]; exists {
		return fmt.Errorf("extension %s already registered", reg.Name)
	}
	r.registrations[reg.Name] = reg
	return nil
}

// Get retrieves a registration by name.
func (r *Registry) Get(name string) (*Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[name]
	if !ok {
		return nil, fmt.Errorf("extension %s not found", name)
	}
	return reg, nil
}

// Has checks if an extension with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.registrations[name]
	return ok
}

// List returns all registrations sorted by name.
func (r *Registry) List() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		result = append(result, reg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Unregister removes an extension from the registry.
func (r *Registry) Unregister(name string) (*Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.registrations[name]
	if !ok {
		return nil, fmt.Errorf("extension %s not found", name)
	}
	delete(r.registrations, name)
	return reg, nil
}

// Count returns the number of registered extensions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.registrations)
}
