package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// DialectForDSN picks the driver from the DSN shape: postgres URLs go through
// pgx, anything else is treated as a local sqlite file path.
func DialectForDSN(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

func Open(ctx context.Context, cfg DBConfig) (*sql.DB, Dialect, error) {
	if cfg.DSN == "" {
		return nil, "", fmt.Errorf("store dsn is required")
	}

	dialect := DialectForDSN(cfg.DSN)
	driver := "pgx"
	if dialect == DialectSQLite {
		driver = "sqlite"
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("open card store: %w", err)
	}

	if dialect == DialectSQLite {
		// modernc sqlite serializes writers on a single connection.
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxIdleTime > 0 {
			db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
		}
		if cfg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping card store: %w", err)
	}

	return db, dialect, nil
}
