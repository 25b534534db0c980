// Package snowflake fetches catalog metadata live from the warehouse's
// system catalog and dependency views. Nothing here is cached: every
// logical request opens a connection, runs its queries, and closes.
package snowflake

import (
	"context"
	"database/sql"

	"github.com/goto/salt/log"
	"github.com/jmoiron/sqlx"
	"github.com/sextant-data/sextant/core/asset"
	sf "github.com/snowflakedb/gosnowflake"
)

// Client is one open warehouse connection. Obtain it with Connect, release
// it with Close; Close is safe on every exit path including mid-use
// failures, and a Client is never handed out half-open.
type Client struct {
	db     *sqlx.DB
	logger log.Logger
}

// Connect validates the config, builds a DSN and opens + pings the
// warehouse. Auth modes needing a browser fail fast before any dial.
func Connect(ctx context.Context, logger log.Logger, config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dsn, err := sf.DSN(&sf.Config{
		Account:   config.Account,
		User:      config.Username,
		Password:  config.Password,
		Warehouse: config.Warehouse,
		Database:  config.Database,
		Schema:    config.Schema,
		Role:      config.Role,
		Region:    config.effectiveRegion(),
	})
	if err != nil {
		return nil, asset.ConnectError{Err: err}
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, asset.ConnectError{Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, asset.ConnectError{Err: err}
	}

	return &Client{db: sqlx.NewDb(db, "snowflake"), logger: logger}, nil
}

// NewClientWithDB wraps an existing handle; test seam.
func NewClientWithDB(logger log.Logger, db *sqlx.DB) *Client {
	return &Client{db: db, logger: logger}
}

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
