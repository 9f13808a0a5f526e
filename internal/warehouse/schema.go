//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse persists the transaction extract in PostgreSQL and
// reads it back for reporting. Aggregation never happens in SQL; the
// analytics package owns those semantics, so a report built from the
// warehouse matches one built straight from the CSV.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the transactions table. Monetary columns are
// unconstrained NUMERIC so sums and round-trips stay exact; discount
// keeps the raw double since tiers group by exact stored equality.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id            BIGSERIAL PRIMARY KEY,
    order_id      TEXT NOT NULL,
    order_date    DATE NOT NULL,
    ship_date     DATE NOT NULL,
    customer_name TEXT NOT NULL,
    segment       TEXT NOT NULL,
    region        TEXT NOT NULL,
    state         TEXT NOT NULL,
    city          TEXT NOT NULL,
    postal_code   TEXT,
    category      TEXT NOT NULL,
    sub_category  TEXT NOT NULL,
    product_name  TEXT NOT NULL,
    sales         NUMERIC NOT NULL CHECK (sales >= 0),
    quantity      INTEGER NOT NULL CHECK (quantity >= 1),
    discount      DOUBLE PRECISION NOT NULL CHECK (discount >= 0 AND discount < 1),
    profit        NUMERIC NOT NULL
);

-- Indexes on the reporting group keys
CREATE INDEX IF NOT EXISTS idx_transactions_discount ON transactions(discount);
CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions(product_name);
CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_name);
CREATE INDEX IF NOT EXISTS idx_transactions_segment ON transactions(segment);
CREATE INDEX IF NOT EXISTS idx_transactions_state ON transactions(state);
CREATE INDEX IF NOT EXISTS idx_transactions_city ON transactions(city, state);
CREATE INDEX IF NOT EXISTS idx_transactions_order_category ON transactions(order_id, category);
`

// Drop schema SQL
const dropSchemaSQL = `
DROP TABLE IF EXISTS transactions CASCADE;
`

// CreateSchema creates the transactions table and its indexes.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the transactions table.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}

// SchemaExists checks if the transactions table exists.
func SchemaExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = 'transactions'
        )
    `).Scan(&exists)
	return exists, err
}
