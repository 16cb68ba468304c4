package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/lib/pq"
)

const (
	// DriverPQ selects github.com/lib/pq.
	DriverPQ = "postgres"
	// DriverPgx selects the database/sql adapter of github.com/jackc/pgx.
	DriverPgx = "pgx"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultOptions returns the pool settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}

// Db is the entry point to the relational store.
type Db struct {
	session Session
	closer  func() error
}

// NewDb opens a connection pool to url using driver and verifies it can reach the database.
func NewDb(driver string, url string, options Options) (*Db, error) {
	if driver != DriverPQ && driver != DriverPgx {
		return nil, fmt.Errorf("unsupported database driver %q, expected %q or %q", driver, DriverPQ, DriverPgx)
	}

	pool, err := sql.Open(driver, url)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(options.MaxOpenConns)
	pool.SetMaxIdleConns(options.MaxIdleConns)
	pool.SetConnMaxLifetime(options.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), options.ConnectTimeout)
	defer cancel()
	if err = pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	return &Db{
		session: &sqlSession{pool},
		closer:  pool.Close,
	}, nil
}

// NewDbWithSession creates a database instance from a session.
func NewDbWithSession(session Session) *Db {
	return &Db{session: session}
}

// Select returns the rows produced by the query.
func (db *Db) Select(ctx context.Context, query string, values ...interface{}) ([]map[string]interface{}, error) {
	rows, err := db.session.Query(ctx, query, values...)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// SelectOne returns the first row produced by the query, or nil when there is none.
func (db *Db) SelectOne(ctx context.Context, query string, values ...interface{}) (map[string]interface{}, error) {
	rows, err := db.Select(ctx, query, values...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Execute runs a statement that produces no rows and returns the number of affected rows.
func (db *Db) Execute(ctx context.Context, query string, values ...interface{}) (int64, error) {
	affected, err := db.session.Execute(ctx, query, values...)
	if err != nil {
		return 0, classify(err)
	}
	return affected, nil
}

// Close releases the connection pool.
func (db *Db) Close() error {
	if db.closer == nil {
		return nil
	}
	return db.closer()
}
