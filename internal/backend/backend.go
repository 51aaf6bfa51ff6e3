// Package backend opens the metadata store selected by configuration and wraps it in a
// metadata.LegacyAdapter.
package backend

import (
	"context"
	"fmt"
	"io"

	"github.com/smartcontractkit/dataset-metadata/config"
	"github.com/smartcontractkit/dataset-metadata/metadata"
	"github.com/smartcontractkit/dataset-metadata/metadata/filestore"
	"github.com/smartcontractkit/dataset-metadata/metadata/sqlstore"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

// Backend is an opened store together with the adapter serving it.
type Backend struct {
	*metadata.LegacyAdapter

	closer io.Closer
}

// Close releases resources held by the store, if any.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}

	return b.closer.Close()
}

// Open builds the store described by cfg.
func Open(ctx context.Context, cfg config.StoreConfig, lggr logger.Logger) (*Backend, error) {
	var (
		store  metadata.Store
		closer io.Closer
	)

	switch cfg.Kind {
	case config.StoreKindMemory:
		store = metadata.NewMemoryProvider()
	case config.StoreKindFile:
		codec, err := filestore.CodecFor(cfg.File.Format)
		if err != nil {
			return nil, err
		}
		fs, err := filestore.New(cfg.File.Dir,
			filestore.WithCodec(codec),
			filestore.WithLogger(lggr.Named("filestore")),
		)
		if err != nil {
			return nil, err
		}
		store = fs
	case config.StoreKindSQL:
		s, err := sqlstore.Open(ctx, sqlstore.Config{
			Driver:          cfg.SQL.Driver,
			DSN:             cfg.SQL.DSN,
			ConnectAttempts: cfg.SQL.ConnectAttempts,
			ConnectDelay:    cfg.SQL.ConnectDelay,
		}, lggr.Named("sqlstore"))
		if err != nil {
			return nil, err
		}
		store, closer = s, s
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}

	lggr.Debugw("Opened metadata store", "kind", cfg.Kind, "type", fmt.Sprintf("%T", store))

	return &Backend{
		LegacyAdapter: metadata.NewLegacyAdapter(store, metadata.WithLogger(lggr.Named("adapter"))),
		closer:        closer,
	}, nil
}
