//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/logging"
)

// loadBatchSize is the number of rows per multi-row INSERT.
const loadBatchSize = 1000

// loadProgressInterval is how many rows pass between progress log lines.
const loadProgressInterval = 10000

// progressReporter logs load progress whenever the row count crosses an
// interval boundary. Small extracts stay quiet.
type progressReporter struct {
	totalRows  int64
	currentRow int64
	interval   int64
}

func (p *progressReporter) Update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	if p.currentRow/p.interval > oldRow/p.interval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading extract")
	}
}

const insertColumns = "(order_id, order_date, ship_date, customer_name, segment, region, state, city, postal_code, category, sub_category, product_name, sales, quantity, discount, profit)"

const selectAllSQL = `
SELECT order_id, order_date, ship_date, customer_name, segment, region,
       state, city, COALESCE(postal_code, ''), category, sub_category,
       product_name, sales::text, quantity, discount, profit::text
FROM transactions
ORDER BY id`

// Load inserts the extract into the transactions table in multi-row
// VALUES batches, all inside one transaction. Either every record lands
// or none do.
func Load(ctx context.Context, pool *pgxpool.Pool, recs []dataset.Record) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	batch := make([]string, 0, loadBatchSize)
	progress := &progressReporter{
		totalRows: int64(len(recs)),
		interval:  loadProgressInterval,
	}

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		sql := fmt.Sprintf("INSERT INTO transactions %s VALUES %s",
			insertColumns, strings.Join(batch, ", "))
		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to insert batch after row %d: %w", inserted, err)
		}
		inserted += len(batch)
		progress.Update(int64(len(batch)))
		batch = batch[:0]
		return nil
	}

	for i := range recs {
		batch = append(batch, valuesTuple(&recs[i]))
		if len(batch) >= loadBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}

	logging.Info().Int("rows", inserted).Msg("Extract loaded")
	return nil
}

// valuesTuple renders one record as a SQL VALUES tuple. Decimal and
// float fields go through their exact string forms.
func valuesTuple(r *dataset.Record) string {
	postal := "NULL"
	if r.PostalCode != "" {
		postal = "'" + escapeSingleQuote(r.PostalCode) + "'"
	}

	return fmt.Sprintf("('%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', %s, '%s', '%s', '%s', %s, %d, %s, %s)",
		escapeSingleQuote(r.OrderID),
		r.OrderDate.Format("2006-01-02"),
		r.ShipDate.Format("2006-01-02"),
		escapeSingleQuote(r.CustomerName),
		escapeSingleQuote(r.Segment),
		escapeSingleQuote(r.Region),
		escapeSingleQuote(r.State),
		escapeSingleQuote(r.City),
		postal,
		escapeSingleQuote(r.Category),
		escapeSingleQuote(r.SubCategory),
		escapeSingleQuote(r.ProductName),
		r.Sales.String(),
		r.Quantity,
		strconv.FormatFloat(r.Discount, 'f', -1, 64),
		r.Profit.String(),
	)
}

func escapeSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Summary holds warehouse-side grand totals used to verify a load.
type Summary struct {
	Rows        int64
	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal
}

// Totals reads the row count and exact monetary sums back from the
// warehouse. Sums come back as text so NUMERIC never passes through a
// float.
func Totals(ctx context.Context, pool *pgxpool.Pool) (Summary, error) {
	var s Summary
	var sales, profit string

	err := pool.QueryRow(ctx, `
        SELECT COUNT(*), COALESCE(SUM(sales), 0)::text, COALESCE(SUM(profit), 0)::text
        FROM transactions
    `).Scan(&s.Rows, &sales, &profit)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read load summary: %w", err)
	}

	if s.TotalSales, err = decimal.NewFromString(sales); err != nil {
		return Summary{}, fmt.Errorf("failed to parse sales total: %w", err)
	}
	if s.TotalProfit, err = decimal.NewFromString(profit); err != nil {
		return Summary{}, fmt.Errorf("failed to parse profit total: %w", err)
	}
	return s, nil
}

// FetchAll reads the whole extract back in insertion order.
func FetchAll(ctx context.Context, pool *pgxpool.Pool) ([]dataset.Record, error) {
	rows, err := pool.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var recs []dataset.Record
	for rows.Next() {
		var r dataset.Record
		var sales, profit string

		if err := rows.Scan(
			&r.OrderID, &r.OrderDate, &r.ShipDate, &r.CustomerName,
			&r.Segment, &r.Region, &r.State, &r.City, &r.PostalCode,
			&r.Category, &r.SubCategory, &r.ProductName,
			&sales, &r.Quantity, &r.Discount, &profit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if r.Sales, err = decimal.NewFromString(sales); err != nil {
			return nil, fmt.Errorf("failed to parse sales: %w", err)
		}
		if r.Profit, err = decimal.NewFromString(profit); err != nil {
			return nil, fmt.Errorf("failed to parse profit: %w", err)
		}
		recs = append(recs, r)
	}

	return recs, rows.Err()
}
