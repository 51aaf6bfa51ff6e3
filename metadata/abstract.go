package metadata

import "context"

// Loader provides a Load() method which is used to read the descriptor stored under a name.
type Loader interface {
	// Load returns the descriptor stored under name. Implementations should return an error
	// matching ErrNoSuchDataset when no entry exists. A nil descriptor with a nil error is also
	// treated as "absent" by the LegacyAdapter.
	Load(ctx context.Context, name string) (*DatasetDescriptor, error)
}

// Store is the minimal collaborator contract every metadata backend must satisfy.
type Store interface {
	Loader

	// Exists reports whether an entry is stored under name.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the entry stored under name. It returns false if nothing was removed.
	Delete(ctx context.Context, name string) (bool, error)
}

// Creator is implemented by stores that know how to add a new entry.
type Creator interface {
	// Create stores descriptor under a name that must not already exist.
	Create(ctx context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error)
}

// Updater is implemented by stores that know how to replace an existing entry.
type Updater interface {
	// Update replaces the descriptor stored under an existing name.
	Update(ctx context.Context, name string, descriptor *DatasetDescriptor) (*DatasetDescriptor, error)
}

// LegacySaver is the single-method contract of older stores.
//
// Deprecated: implement Creator and Updater instead. LegacySaver is kept as a separate
// capability so that it can be dropped without changing Provider.
type LegacySaver interface {
	// Save creates the entry if it is absent and replaces it otherwise.
	Save(ctx context.Context, name string, descriptor *DatasetDescriptor) error
}

// Provider is the modern metadata contract.
type Provider interface {
	Store
	Creator
	Updater
}

// Lister is implemented by stores that can enumerate the names they hold.
type Lister interface {
	// Names returns all stored dataset names in ascending order.
	Names(ctx context.Context) ([]string, error)
}
