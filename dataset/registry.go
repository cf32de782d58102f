package dataset

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNotFound  = errors.New("dataset not found")
	ErrDuplicate = errors.New("dataset already registered")
	ErrEmptyName = errors.New("empty dataset name")
)

// Registry maps dataset names to datasets. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]Dataset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{datasets: make(map[string]Dataset)}
}

// Default is a process wide registry. Nothing is registered implicitly.
var Default = NewRegistry()

// Register adds a dataset under a name. Names can only be registered once.
func (r *Registry) Register(name string, ds Dataset) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.datasets[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.datasets[name] = ds
	return nil
}

// Get returns the dataset registered under name.
func (r *Registry) Get(name string) (Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ds, nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
