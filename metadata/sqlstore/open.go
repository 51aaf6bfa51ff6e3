package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/smartcontractkit/dataset-metadata/pkg/logger"

	_ "github.com/lib/pq"
	_ "github.com/proullon/ramsql/driver"
)

const (
	// DriverPostgres selects github.com/lib/pq.
	DriverPostgres = "postgres"
	// DriverRamSQL selects the in-process github.com/proullon/ramsql engine. Data lives only as
	// long as the process.
	DriverRamSQL = "ramsql"
)

// Config describes how to reach the metadata database.
type Config struct {
	Driver string
	DSN    string
	// ConnectAttempts is the number of pings tried before Open gives up.
	ConnectAttempts uint
	// ConnectDelay is the fixed delay between pings.
	ConnectDelay time.Duration
}

func (c Config) validate() error {
	switch c.Driver {
	case DriverPostgres, DriverRamSQL:
	case "":
		return errors.New("sqlstore: driver is required")
	default:
		return fmt.Errorf("sqlstore: unsupported driver %q", c.Driver)
	}
	if c.DSN == "" {
		return errors.New("sqlstore: dsn is required")
	}

	return nil
}

// Open connects to the database described by cfg, waiting for it to accept connections, and
// returns a Store that owns the connection pool.
func Open(ctx context.Context, cfg Config, lggr logger.Logger) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}

	err = retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(cfg.ConnectDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			lggr.Warnw("Metadata database not reachable, retrying", "driver", cfg.Driver, "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", cfg.Driver, err)
	}

	store, err := NewWithDB(ctx, db, lggr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	lggr.Infow("Opened metadata database", "driver", cfg.Driver)

	return store, nil
}
