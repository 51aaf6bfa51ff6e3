package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchDataset is returned by Load, Update and backend lookups when no entry is stored
	// under the requested name.
	ErrNoSuchDataset = errors.New("no dataset metadata can be found for the provided name")

	// ErrDatasetExists is returned by Create when an entry is already stored under the name.
	ErrDatasetExists = errors.New("a dataset metadata entry with the supplied name already exists")

	// ErrUnimplemented is returned by the LegacyAdapter when Create or Update is reached from
	// inside its own Save, which means the wrapped store implements neither.
	ErrUnimplemented = errors.New("unimplemented metadata operation")

	// ErrInvalidName is returned by ValidateName.
	ErrInvalidName = errors.New("invalid dataset name")

	// ErrInvalidDescriptor is returned by backends asked to store a nil descriptor.
	ErrInvalidDescriptor = errors.New("invalid dataset descriptor")
)

// ValidateDescriptor checks that d can be stored by a backend.
func ValidateDescriptor(d *DatasetDescriptor) error {
	if d == nil {
		return fmt.Errorf("%w: descriptor is nil", ErrInvalidDescriptor)
	}

	return nil
}

// IsNoSuchDataset reports whether err signals a missing dataset.
func IsNoSuchDataset(err error) bool {
	return errors.Is(err, ErrNoSuchDataset)
}
