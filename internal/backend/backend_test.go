package backend

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/dataset-metadata/config"
	"github.com/smartcontractkit/dataset-metadata/metadata"
	"github.com/smartcontractkit/dataset-metadata/metadata/filestore"
	"github.com/smartcontractkit/dataset-metadata/metadata/sqlstore"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		give     func(t *testing.T) config.StoreConfig
		wantType any
	}{
		{
			name: "memory",
			give: func(*testing.T) config.StoreConfig {
				return config.StoreConfig{Kind: config.StoreKindMemory}
			},
			wantType: &metadata.MemoryProvider{},
		},
		{
			name: "file",
			give: func(t *testing.T) config.StoreConfig {
				return config.StoreConfig{
					Kind: config.StoreKindFile,
					File: config.FileStoreConfig{Dir: t.TempDir(), Format: "toml"},
				}
			},
			wantType: &filestore.Store{},
		},
		{
			name: "sql",
			give: func(*testing.T) config.StoreConfig {
				return config.StoreConfig{
					Kind: config.StoreKindSQL,
					SQL: config.SQLStoreConfig{
						Driver:          sqlstore.DriverRamSQL,
						DSN:             "backend-" + uuid.NewString(),
						ConnectAttempts: 1,
					},
				}
			},
			wantType: &sqlstore.Store{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			b, err := Open(ctx, tt.give(t), logger.Test(t))
			require.NoError(t, err)
			t.Cleanup(func() {
				require.NoError(t, b.Close())
			})

			assert.IsType(t, tt.wantType, b.Unwrap())

			desc := &metadata.DatasetDescriptor{Format: metadata.FormatCSV, Schema: "id,name"}
			require.NoError(t, b.Save(ctx, "events", desc))
			require.NoError(t, b.Save(ctx, "events", desc))

			got, err := b.Load(ctx, "events")
			require.NoError(t, err)
			assert.True(t, desc.Equals(got))

			names, err := b.Names(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"events"}, names)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    config.StoreConfig
		wantErr string
	}{
		{
			name:    "unknown kind",
			give:    config.StoreConfig{Kind: "s3"},
			wantErr: `unknown store kind "s3"`,
		},
		{
			name: "unknown file format",
			give: config.StoreConfig{
				Kind: config.StoreKindFile,
				File: config.FileStoreConfig{Dir: "unused", Format: "ini"},
			},
			wantErr: `unsupported file store format "ini"`,
		},
		{
			name: "unknown sql driver",
			give: config.StoreConfig{
				Kind: config.StoreKindSQL,
				SQL:  config.SQLStoreConfig{Driver: "oracle", DSN: "x"},
			},
			wantErr: `unsupported driver "oracle"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Open(context.Background(), tt.give, logger.Nop())
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
