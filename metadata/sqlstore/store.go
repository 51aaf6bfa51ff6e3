// Package sqlstore provides a database/sql backed metadata store that implements only the
// legacy Save contract. Wrap it in a metadata.LegacyAdapter to use Create and Update.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/smartcontractkit/dataset-metadata/metadata"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

// Store keeps one row per dataset in the dataset_metadata table, with the descriptor encoded as
// a JSON metadata.Document.
type Store struct {
	db   *dbController
	lggr logger.Logger
}

var (
	_ metadata.Store       = (*Store)(nil)
	_ metadata.LegacySaver = (*Store)(nil)
	_ metadata.Lister      = (*Store)(nil)
)

// NewWithDB creates a Store on an already opened database and creates the schema if it is
// missing. The caller keeps ownership of db.
func NewWithDB(ctx context.Context, db *sql.DB, lggr logger.Logger) (*Store, error) {
	ctrl := newDbController(db, lggr)
	if _, err := ctrl.ExecContext(ctx, sCHEMA_DATASET_METADATA); err != nil {
		return nil, fmt.Errorf("failed to create dataset metadata schema: %w", err)
	}

	return &Store{db: ctrl, lggr: lggr}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.base.Close()
}

// Load returns the descriptor stored under name, or an error wrapping metadata.ErrNoSuchDataset.
func (s *Store) Load(ctx context.Context, name string) (*metadata.DatasetDescriptor, error) {
	rows, err := s.db.QueryContext(ctx, query_DATASET_METADATA_BY_NAME, name)
	defer func(rows *sql.Rows) {
		if rows != nil {
			_ = rows.Close()
		}
	}(rows)
	if err != nil {
		return nil, err
	}

	count := 0
	var raw string
	for rows.Next() {
		count++
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	switch count {
	case 0:
		return nil, fmt.Errorf("%w: %s", metadata.ErrNoSuchDataset, name)
	case 1:
		return decode(raw)
	default:
		return nil, fmt.Errorf("expected a single row for %s, got %d", name, count)
	}
}

// Exists reports whether a row is stored under name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	return exists(ctx, s.db, name)
}

// Delete removes the row stored under name and reports whether it existed.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	var deleted bool
	err := s.db.WithTx(ctx, func(ctx context.Context, db DB) error {
		found, err := exists(ctx, db, name)
		if err != nil || !found {
			return err
		}

		if _, err = db.ExecContext(ctx, query_DELETE_DATASET_METADATA, name); err != nil {
			return fmt.Errorf("failed to delete dataset metadata %s: %w", name, err)
		}
		deleted = true

		return nil
	})

	return deleted, err
}

// Save inserts the row if it is absent and replaces its descriptor otherwise.
//
// Deprecated: call Create or Update on a metadata.LegacyAdapter wrapping the store.
func (s *Store) Save(ctx context.Context, name string, descriptor *metadata.DatasetDescriptor) error {
	if err := metadata.ValidateName(name); err != nil {
		return err
	}
	if err := metadata.ValidateDescriptor(descriptor); err != nil {
		return err
	}

	raw, err := json.Marshal(metadata.NewDocument(descriptor))
	if err != nil {
		return fmt.Errorf("failed to encode dataset metadata %s: %w", name, err)
	}

	return s.db.WithTx(ctx, func(ctx context.Context, db DB) error {
		found, err := exists(ctx, db, name)
		if err != nil {
			return err
		}

		if found {
			_, err = db.ExecContext(ctx, query_UPDATE_DATASET_METADATA, name, string(raw))
		} else {
			_, err = db.ExecContext(ctx, query_INSERT_DATASET_METADATA, name, string(raw))
		}
		if err != nil {
			return fmt.Errorf("failed to save dataset metadata %s: %w", name, err)
		}
		s.lggr.Debugw("Saved dataset metadata", "name", name, "replaced", found)

		return nil
	})
}

// Names returns all stored names in ascending order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query_ALL_DATASET_NAMES)
	defer func(rows *sql.Rows) {
		if rows != nil {
			_ = rows.Close()
		}
	}(rows)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	slices.Sort(names)

	return names, nil
}

func exists(ctx context.Context, db DB, name string) (bool, error) {
	rows, err := db.QueryContext(ctx, query_DATASET_NAME_BY_NAME, name)
	defer func(rows *sql.Rows) {
		if rows != nil {
			_ = rows.Close()
		}
	}(rows)
	if err != nil {
		return false, err
	}

	found := rows.Next()

	return found, rows.Err()
}

func decode(raw string) (*metadata.DatasetDescriptor, error) {
	var doc metadata.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal descriptor JSON: %w", err)
	}

	return doc.Descriptor()
}
