package metadata

import (
	"context"
	"fmt"

	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

// LegacyAdapter exposes both the modern Provider contract and the legacy Save contract on top
// of any Store.
//
// A store that implements only LegacySaver becomes usable through Create and Update, which
// funnel into Save. A store that implements only Creator and Updater stays usable through Save,
// which loads the entry and dispatches to one of them. If a store implements neither Creator nor
// Updater the two paths would call each other forever, so Create and Update reached from inside
// Save fail with ErrUnimplemented instead.
//
// A LegacyAdapter is not safe for concurrent use. Wrap it with NewSyncAdapter or use one
// adapter per goroutine.
type LegacyAdapter struct {
	store Store
	lggr  logger.Logger

	// inSave is set while the default Save is running; it detects call loops.
	inSave bool
}

var (
	_ Provider    = (*LegacyAdapter)(nil)
	_ LegacySaver = (*LegacyAdapter)(nil)
)

// AdapterOption configures a LegacyAdapter.
type AdapterOption func(*LegacyAdapter)

// WithLogger sets the logger used by the adapter.
func WithLogger(lggr logger.Logger) AdapterOption {
	return func(a *LegacyAdapter) {
		a.lggr = lggr
	}
}

// NewLegacyAdapter wraps store.
func NewLegacyAdapter(store Store, opts ...AdapterOption) *LegacyAdapter {
	a := &LegacyAdapter{
		store: store,
		lggr:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Unwrap returns the wrapped store.
func (a *LegacyAdapter) Unwrap() Store {
	return a.store
}

// Load returns the descriptor stored under name.
func (a *LegacyAdapter) Load(ctx context.Context, name string) (*DatasetDescriptor, error) {
	return a.store.Load(ctx, name)
}

// Exists reports whether an entry is stored under name.
func (a *LegacyAdapter) Exists(ctx context.Context, name string) (bool, error) {
	return a.store.Exists(ctx, name)
}

// Delete removes the entry stored under name.
func (a *LegacyAdapter) Delete(ctx context.Context, name string) (bool, error) {
	return a.store.Delete(ctx, name)
}

// Names lists the stored names when the wrapped store implements Lister.
func (a *LegacyAdapter) Names(ctx context.Context) ([]string, error) {
	l, ok := a.store.(Lister)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not implement Names", ErrUnimplemented, a.store)
	}

	return l.Names(ctx)
}

// Create stores descriptor under name. Stores implementing Creator are called directly;
// otherwise the call goes through Save and descriptor itself is returned.
func (a *LegacyAdapter) Create(ctx context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	if c, ok := a.store.(Creator); ok {
		return c.Create(ctx, name, descriptor)
	}

	if a.inSave {
		a.lggr.Warnw("Refusing re-entrant create from legacy save", "name", name)
		return nil, fmt.Errorf("%w: %T must implement Create", ErrUnimplemented, a.store)
	}

	if err := a.Save(ctx, name, descriptor); err != nil {
		return nil, err
	}

	return descriptor, nil
}

// Update replaces the descriptor stored under name. Stores implementing Updater are called
// directly; otherwise the call goes through Save and descriptor itself is returned.
func (a *LegacyAdapter) Update(ctx context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error) {
	if u, ok := a.store.(Updater); ok {
		return u.Update(ctx, name, descriptor)
	}

	if a.inSave {
		a.lggr.Warnw("Refusing re-entrant update from legacy save", "name", name)
		return nil, fmt.Errorf("%w: %T must implement Update", ErrUnimplemented, a.store)
	}

	if err := a.Save(ctx, name, descriptor); err != nil {
		return nil, err
	}

	return descriptor, nil
}

// Save creates or replaces the entry stored under name.
//
// Deprecated: use Create or Update.
func (a *LegacyAdapter) Save(ctx context.Context, name string, descriptor *DatasetDescriptor) error {
	if s, ok := a.store.(LegacySaver); ok {
		return s.Save(ctx, name, descriptor)
	}

	a.inSave = true
	defer func() {
		a.inSave = false
	}()

	exists, err := a.existsForSave(ctx, name)
	if err != nil {
		return err
	}

	if exists {
		a.lggr.Debugw("Legacy save dispatching to update", "name", name)
		_, err = a.Update(ctx, name, descriptor)
	} else {
		a.lggr.Debugw("Legacy save dispatching to create", "name", name)
		_, err = a.Create(ctx, name, descriptor)
	}

	return err
}

// existsForSave treats both a nil descriptor and ErrNoSuchDataset as an absent entry. Any
// other load error is returned unchanged.
func (a *LegacyAdapter) existsForSave(ctx context.Context, name string) (bool, error) {
	old, err := a.store.Load(ctx, name)
	if IsNoSuchDataset(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return old != nil, nil
}
