package metadata

import (
	"context"
	"sync"
)

// SyncAdapter serializes every call to a LegacyAdapter so that one adapter can be shared by
// several goroutines.
type SyncAdapter struct {
	mu      sync.Mutex
	adapter *LegacyAdapter
}

var (
	_ Provider    = (*SyncAdapter)(nil)
	_ LegacySaver = (*SyncAdapter)(nil)
)

// NewSyncAdapter wraps adapter. The adapter must not be used directly afterwards.
func NewSyncAdapter(adapter *LegacyAdapter) *SyncAdapter {
	return &SyncAdapter{adapter: adapter}
}

// Load returns the descriptor stored under name.
func (s *SyncAdapter) Load(ctx context.Context, name string) (*DatasetDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Load(ctx, name)
}

// Exists reports whether an entry is stored under name.
func (s *SyncAdapter) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Exists(ctx, name)
}

// Delete removes the entry stored under name.
func (s *SyncAdapter) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Delete(ctx, name)
}

// Create stores descriptor under name.
func (s *SyncAdapter) Create(ctx context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Create(ctx, name, descriptor)
}

// Update replaces the descriptor stored under name.
func (s *SyncAdapter) Update(ctx context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Update(ctx, name, descriptor)
}

// Save creates or replaces the entry stored under name.
//
// Deprecated: use Create or Update.
func (s *SyncAdapter) Save(ctx context.Context, name string, descriptor *DatasetDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Save(ctx, name, descriptor)
}

// Names lists the wrapped store's names if it implements Lister.
func (s *SyncAdapter) Names(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adapter.Names(ctx)
}
