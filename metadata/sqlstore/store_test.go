package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/dataset-metadata/metadata"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

func testDescriptor(location string) *metadata.DatasetDescriptor {
	return &metadata.DatasetDescriptor{
		Format:          metadata.FormatAvro,
		Location:        location,
		Schema:          `{"type":"record","name":"Event","fields":[{"name":"id","type":"long"}]}`,
		SchemaVersion:   semver.MustParse("1.0.0"),
		PartitionFields: []string{"day"},
		Properties:      map[string]string{"owner": "analytics"},
	}
}

// openRamSQLStore opens a Store on a fresh, uniquely named in-process database.
func openRamSQLStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), Config{
		Driver:          DriverRamSQL,
		DSN:             "sqlstore-" + uuid.NewString(),
		ConnectAttempts: 1,
	}, logger.Test(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openRamSQLStore(t)

	_, err := store.Load(ctx, "events")
	require.ErrorIs(t, err, metadata.ErrNoSuchDataset)

	descA := testDescriptor("hdfs:///a")
	require.NoError(t, store.Save(ctx, "events", descA))

	got, err := store.Load(ctx, "events")
	require.NoError(t, err)
	assert.True(t, descA.Equals(got))

	descB := testDescriptor("hdfs:///b")
	require.NoError(t, store.Save(ctx, "events", descB))

	got, err = store.Load(ctx, "events")
	require.NoError(t, err)
	assert.True(t, descB.Equals(got))

	names, err := store.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"events"}, names)
}

func TestStore_ExistsAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openRamSQLStore(t)
	require.NoError(t, store.Save(ctx, "events", testDescriptor("hdfs:///a")))
	require.NoError(t, store.Save(ctx, "clicks", testDescriptor("hdfs:///c")))

	exists, err := store.Exists(ctx, "events")
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := store.Delete(ctx, "events")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "events")
	require.NoError(t, err)
	assert.False(t, deleted)

	exists, err = store.Exists(ctx, "events")
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := store.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"clicks"}, names)
}

func TestStore_SaveRejectsInvalidName(t *testing.T) {
	t.Parallel()

	store := openRamSQLStore(t)
	err := store.Save(context.Background(), "", testDescriptor("hdfs:///a"))
	require.ErrorIs(t, err, metadata.ErrInvalidName)
}

func TestStore_SaveRejectsNilDescriptor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openRamSQLStore(t)

	require.ErrorIs(t, store.Save(ctx, "events", nil), metadata.ErrInvalidDescriptor)

	_, err := metadata.NewLegacyAdapter(store).Create(ctx, "events", nil)
	require.ErrorIs(t, err, metadata.ErrInvalidDescriptor)

	exists, err := store.Exists(ctx, "events")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_ThroughLegacyAdapter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lggr, logs := logger.TestObserved(t, zapcore.DebugLevel)
	store := openRamSQLStore(t)
	store.lggr = lggr

	// The store only knows Save, so the adapter funnels Create and Update into it.
	_, isCreator := any(store).(metadata.Creator)
	require.False(t, isCreator)

	adapter := metadata.NewLegacyAdapter(store)
	descA := testDescriptor("hdfs:///a")
	got, err := adapter.Create(ctx, "events", descA)
	require.NoError(t, err)
	assert.Same(t, descA, got)

	descB := testDescriptor("hdfs:///b")
	got, err = adapter.Update(ctx, "events", descB)
	require.NoError(t, err)
	assert.Same(t, descB, got)

	loaded, err := adapter.Load(ctx, "events")
	require.NoError(t, err)
	assert.True(t, descB.Equals(loaded))

	saved := logs.FilterMessage("Saved dataset metadata").All()
	require.Len(t, saved, 2)
	assert.Equal(t, false, saved[0].ContextMap()["replaced"])
	assert.Equal(t, true, saved[1].ContextMap()["replaced"])
}

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    Config
		wantErr string
	}{
		{
			name:    "missing driver",
			give:    Config{DSN: "x"},
			wantErr: "driver is required",
		},
		{
			name:    "unsupported driver",
			give:    Config{Driver: "oracle", DSN: "x"},
			wantErr: `unsupported driver "oracle"`,
		},
		{
			name:    "missing dsn",
			give:    Config{Driver: DriverRamSQL},
			wantErr: "dsn is required",
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

func TestOpen_RetriesUnreachablePostgres(t *testing.T) {
	t.Parallel()

	lggr, logs := logger.TestObserved(t, zapcore.WarnLevel)
	_, err := Open(context.Background(), Config{
		Driver:          DriverPostgres,
		DSN:             "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1",
		ConnectAttempts: 2,
		ConnectDelay:    10 * time.Millisecond,
	}, lggr)

	require.ErrorContains(t, err, "failed to reach postgres database")
	assert.GreaterOrEqual(t, logs.FilterMessage("Metadata database not reachable, retrying").Len(), 1)
}
