package metadata

import (
	"context"
	"slices"
	"sync"
)

// MemoryProvider is an in-memory implementation of the Provider and Lister interfaces.
// Descriptors are cloned on the way in and on the way out.
type MemoryProvider struct {
	mu      sync.RWMutex
	records map[string]*DatasetDescriptor
}

var (
	_ Provider = (*MemoryProvider)(nil)
	_ Lister   = (*MemoryProvider)(nil)
)

// NewMemoryProvider creates an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{records: map[string]*DatasetDescriptor{}}
}

// Load returns a copy of the descriptor stored under name, or ErrNoSuchDataset.
func (p *MemoryProvider) Load(_ context.Context, name string) (*DatasetDescriptor, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	d, ok := p.records[name]
	if !ok {
		return nil, ErrNoSuchDataset
	}

	return d.Clone(), nil
}

// Exists reports whether an entry is stored under name.
func (p *MemoryProvider) Exists(_ context.Context, name string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.records[name]

	return ok, nil
}

// Create inserts a new entry. If an entry with the same name already exists, ErrDatasetExists
// is returned.
func (p *MemoryProvider) Create(_ context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	if err := ValidateDescriptor(descriptor); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.records[name]; ok {
		return nil, ErrDatasetExists
	}
	p.records[name] = descriptor.Clone()

	return descriptor, nil
}

// Update replaces an existing entry. If no such entry exists, ErrNoSuchDataset is returned.
func (p *MemoryProvider) Update(_ context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	if err := ValidateDescriptor(descriptor); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.records[name]; !ok {
		return nil, ErrNoSuchDataset
	}
	p.records[name] = descriptor.Clone()

	return descriptor, nil
}

// Delete removes the entry stored under name and reports whether it existed.
func (p *MemoryProvider) Delete(_ context.Context, name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.records[name]; !ok {
		return false, nil
	}
	delete(p.records, name)

	return true, nil
}

// Names returns the stored names in ascending order.
func (p *MemoryProvider) Names(_ context.Context) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.records))
	for name := range p.records {
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}
