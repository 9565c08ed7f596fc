package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds registered formats.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// DefaultRegistry is the global format registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format to the registry.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[strings.ToLower(f.Name())] = f
}

// Get retrieves a format by name.
func (r *Registry) Get(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

// GetSerializer retrieves a serializer by name.
func (r *Registry) GetSerializer(name string) (Serializer, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	s, ok := f.(Serializer)
	if !ok {
		return nil, fmt.Errorf("format %s does not support serialization", name)
	}
	return s, nil
}

// List returns all registered format names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(name string) (Format, bool) {
	return DefaultRegistry.Get(name)
}

// GetSerializer retrieves a serializer from the default registry.
func GetSerializer(name string) (Serializer, error) {
	return DefaultRegistry.GetSerializer(name)
}

// List returns the names in the default registry.
func List() []string {
	return DefaultRegistry.List()
}
