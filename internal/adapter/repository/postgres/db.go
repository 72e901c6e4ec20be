package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=wallet sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// schema creates the wallet tables. Amounts are whole token units, so NUMERIC(78, 0)
// holds any 256-bit value exactly.
// History rows are stored per wallet: a transfer between two known wallets produces
// an outgoing row for the sender and an incoming row for the receiver with the same id.
const schema = `
CREATE TABLE IF NOT EXISTS wallets (
	address    TEXT PRIMARY KEY,
	balance    NUMERIC(78, 0) NOT NULL DEFAULT 0 CHECK (balance >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS wallet_requests (
	id         TEXT NOT NULL,
	address    TEXT NOT NULL REFERENCES wallets (address),
	amount     NUMERIC(78, 0) NOT NULL,
	status     TEXT NOT NULL CHECK (status IN ('done', 'ongoing', 'cancelled')),
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (id, address)
);

CREATE TABLE IF NOT EXISTS wallet_boosts (
	id           TEXT NOT NULL,
	address      TEXT NOT NULL REFERENCES wallets (address),
	counterparty TEXT NOT NULL,
	direction    TEXT NOT NULL CHECK (direction IN ('incoming', 'outgoing')),
	amount       NUMERIC(78, 0) NOT NULL,
	username     TEXT NOT NULL DEFAULT '',
	post_id      TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (id, address)
);

CREATE TABLE IF NOT EXISTS wallet_transfers (
	id           TEXT NOT NULL,
	address      TEXT NOT NULL REFERENCES wallets (address),
	counterparty TEXT NOT NULL,
	direction    TEXT NOT NULL CHECK (direction IN ('incoming', 'outgoing')),
	amount       NUMERIC(78, 0) NOT NULL,
	cost         NUMERIC(78, 0) NOT NULL DEFAULT 0,
	description  TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (id, address)
);

CREATE TABLE IF NOT EXISTS boost_settings (
	owner_did      TEXT PRIMARY KEY,
	wallet_address TEXT NOT NULL,
	message        TEXT NOT NULL DEFAULT '',
	updated_at     TIMESTAMPTZ NOT NULL
);
`

// Migrate creates any missing tables
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
