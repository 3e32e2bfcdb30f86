package database

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Open opens the reference SQLite database with sane defaults and optional
// query debug logging.
func Open(dsn string, debug bool) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	// The reference data is read-mostly; WAL keeps seeding fast without
	// blocking concurrent readers.
	if _, err := db.Exec(`
        PRAGMA journal_mode = WAL;
        PRAGMA synchronous = NORMAL;
        PRAGMA foreign_keys = ON;
        PRAGMA busy_timeout = 5000;
    `); err != nil {
		return nil, err
	}

	return db, nil
}

var memSeq atomic.Int64

// OpenMemory opens a fresh in-memory database, used by tests. Each call gets
// its own named instance so tests never see each other's rows; a single pooled
// connection keeps the instance alive for the database handle's lifetime.
func OpenMemory() (*bun.DB, error) {
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", memSeq.Add(1))
	db, err := Open(dsn, false)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
