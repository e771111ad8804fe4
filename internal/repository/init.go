package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/freight-orders/internal/common"
)

// InitResult holds an open, migrated database and its cleanup hook.
type InitResult struct {
	DB      *DB
	Cleanup func()
}

// InitDatabase opens the configured database (or a private in-memory SQLite
// one when inmem is set), runs Migrate and returns a cleanup hook.
func InitDatabase(ctx context.Context, cfg *common.Config, inmem bool, logger *slog.Logger) (*InitResult, error) {
	var (
		db  *DB
		err error
	)
	switch {
	case inmem:
		db, err = OpenSQLite(ctx, MemoryDSN, logger)
	case cfg.Database.Driver == common.DriverSQLite:
		db, err = OpenSQLite(ctx, cfg.Database.DSN, logger)
	default:
		db, err = OpenPostgres(ctx, Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", common.ErrDatabase, err)
	}
	if err := Migrate(ctx, db, logger); err != nil {
		Close(db, logger)
		return nil, err
	}
	return &InitResult{DB: db, Cleanup: func() { Close(db, logger) }}, nil
}
