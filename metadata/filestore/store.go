// Package filestore provides a metadata.Provider that keeps one document per dataset in a
// directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/smartcontractkit/dataset-metadata/metadata"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
	tmpExt   = ".tmp"

	// nameMax is the longest file name most file systems accept.
	nameMax = 255
)

// Store is a directory-backed implementation of the metadata.Provider and metadata.Lister
// interfaces. Each dataset is stored at <dir>/<name>.<ext>.
//
// Writes are atomic with respect to readers: a document is written to a temporary file and then
// renamed into place. Create and Update are check-then-write, so two processes racing on the
// same name can both succeed.
type Store struct {
	dir   string
	codec Codec
	lggr  logger.Logger
}

var (
	_ metadata.Provider = (*Store)(nil)
	_ metadata.Lister   = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithCodec selects the file format. The default is YAMLCodec.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// WithLogger sets the logger used by the store.
func WithLogger(lggr logger.Logger) Option {
	return func(s *Store) {
		s.lggr = lggr
	}
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:   dir,
		codec: YAMLCodec{},
		lggr:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory %s: %w", dir, err)
	}

	return s, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the descriptor stored under name.
func (s *Store) Load(_ context.Context, name string) (*metadata.DatasetDescriptor, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", metadata.ErrNoSuchDataset, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc metadata.Document
	if err = s.codec.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	d, err := doc.Descriptor()
	if err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}

	return d, nil
}

// Exists reports whether a document is stored under name.
func (s *Store) Exists(_ context.Context, name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}

	return fileExists(path)
}

// Create writes a new document. It fails with metadata.ErrDatasetExists if one is already
// stored under name.
func (s *Store) Create(ctx context.Context, name string, descriptor *metadata.DatasetDescriptor) (*metadata.DatasetDescriptor, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", metadata.ErrDatasetExists, name)
	}

	if err = s.write(name, descriptor); err != nil {
		return nil, err
	}
	s.lggr.Debugw("Created dataset metadata", "name", name, "dir", s.dir)

	return descriptor, nil
}

// Update replaces an existing document. It fails with metadata.ErrNoSuchDataset if nothing is
// stored under name.
func (s *Store) Update(ctx context.Context, name string, descriptor *metadata.DatasetDescriptor) (*metadata.DatasetDescriptor, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", metadata.ErrNoSuchDataset, name)
	}

	if err = s.write(name, descriptor); err != nil {
		return nil, err
	}
	s.lggr.Debugw("Updated dataset metadata", "name", name, "dir", s.dir)

	return descriptor, nil
}

// Delete removes the document stored under name and reports whether it existed.
func (s *Store) Delete(_ context.Context, name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return true, nil
}

// Names lists the datasets in the directory in ascending order.
func (s *Store) Names(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata directory %s: %w", s.dir, err)
	}

	suffix := "." + s.codec.Ext()
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), suffix); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names, nil
}

// MaxNameLength returns the longest dataset name the store accepts, which leaves room for the
// codec extension within a single file name.
func (s *Store) MaxNameLength() int {
	return min(metadata.MaxNameLength, nameMax-len(s.codec.Ext())-1)
}

func (s *Store) path(name string) (string, error) {
	if err := metadata.ValidateName(name); err != nil {
		return "", err
	}
	if len(name) > s.MaxNameLength() {
		return "", fmt.Errorf("%w: name is longer than %d bytes", metadata.ErrInvalidName, s.MaxNameLength())
	}

	return filepath.Join(s.dir, name+"."+s.codec.Ext()), nil
}

// write encodes descriptor into a hidden temporary file and renames it over the target. The
// temporary name does not contain the dataset name so it stays short.
func (s *Store) write(name string, descriptor *metadata.DatasetDescriptor) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err = metadata.ValidateDescriptor(descriptor); err != nil {
		return err
	}

	b, err := s.codec.Marshal(metadata.NewDocument(descriptor))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp := filepath.Join(s.dir, "."+ksuid.New().String()+tmpExt)
	if err = os.WriteFile(tmp, b, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return true, nil
}
