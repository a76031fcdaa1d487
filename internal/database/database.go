// Package database provides SQL database connection management for the
// pipeline's database sources and targets.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "modernc.org/sqlite"             // pure-Go sqlite driver

	"github.com/galafis/Modern-ETL-Pipeline/internal/config"
)

// Open establishes a connection for a database source with retry and
// exponential backoff.
func Open(ctx context.Context, src config.SourceConfig) (*sql.DB, error) {
	return openWithRetry(ctx, src.Driver, src.DSN)
}

// OpenTarget establishes a connection for a database target with retry and
// exponential backoff.
func OpenTarget(ctx context.Context, tgt config.TargetConfig) (*sql.DB, error) {
	return openWithRetry(ctx, tgt.Driver, tgt.DSN)
}

// openWithRetry attempts to connect with exponential backoff.
func openWithRetry(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = open(driver, dsn)
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// open creates a database connection for the configured driver.
func open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}
