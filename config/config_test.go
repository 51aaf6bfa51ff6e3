package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	// fileCfg is the config that is loaded from the testdata/config.yml file.
	fileCfg = &Config{
		Log: LogConfig{
			Level:  "debug",
			Format: "console",
		},
		Store: StoreConfig{
			Kind: StoreKindSQL,
			File: FileStoreConfig{
				Dir:    "/var/lib/dsmeta",
				Format: "toml",
			},
			SQL: SQLStoreConfig{
				Driver:          "ramsql",
				DSN:             "dsmeta-test",
				ConnectAttempts: 3,
				ConnectDelay:    250 * time.Millisecond,
			},
		},
	}

	// defaultCfg is the config produced when nothing is set.
	defaultCfg = &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Kind: StoreKindMemory,
			File: FileStoreConfig{
				Format: "yaml",
			},
			SQL: SQLStoreConfig{
				Driver:          "postgres",
				ConnectAttempts: 5,
				ConnectDelay:    time.Second,
			},
		},
	}
)

func TestLoad_File(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join("testdata", "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, fileCfg, got)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultCfg, got)

	got, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultCfg, got)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DSMETA_STORE_KIND", "file")
	t.Setenv("DSMETA_STORE_FILE_DIR", "/tmp/datasets")
	t.Setenv("DSMETA_STORE_SQL_CONNECT_DELAY", "2s")

	got, err := Load(filepath.Join("testdata", "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, StoreKindFile, got.Store.Kind)
	assert.Equal(t, "/tmp/datasets", got.Store.File.Dir)
	assert.Equal(t, "toml", got.Store.File.Format)
	assert.Equal(t, 2*time.Second, got.Store.SQL.ConnectDelay)
	assert.Equal(t, "debug", got.Log.Level)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("DSMETA_STORE_KIND", "sql")
	t.Setenv("DATABASE_URL", "postgres://localhost/dsmeta")
	t.Setenv("LOG_LEVEL", "warn")

	got, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/dsmeta", got.Store.SQL.DSN)
	assert.Equal(t, "warn", got.Log.Level)
}

func TestLoad_RoundTripsYAML(t *testing.T) {
	t.Parallel()

	b, err := yaml.Marshal(fileCfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, fileCfg, got)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    Config
		wantErr string
	}{
		{
			name: "memory needs nothing",
			give: Config{Store: StoreConfig{Kind: StoreKindMemory}},
		},
		{
			name:    "file needs a directory",
			give:    Config{Store: StoreConfig{Kind: StoreKindFile}},
			wantErr: "store.file.dir is required",
		},
		{
			name:    "sql needs a dsn",
			give:    Config{Store: StoreConfig{Kind: StoreKindSQL}},
			wantErr: "store.sql.dsn is required",
		},
		{
			name:    "unknown kind",
			give:    Config{Store: StoreConfig{Kind: "s3"}},
			wantErr: `unknown store kind "s3"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate()
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewViper_BindsEveryEnvName(t *testing.T) {
	for _, envs := range envBindings {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
	t.Setenv("DSMETA_STORE_FILE_DIR", "/srv/datasets")
	t.Setenv("LOG_FORMAT", "console")

	v, err := newViper()
	require.NoError(t, err)

	assert.Equal(t, "/srv/datasets", v.GetString("store.file.dir"))
	assert.Equal(t, "console", v.GetString("log.format"))
	assert.Equal(t, StoreKindMemory, v.GetString("store.kind"))
}
