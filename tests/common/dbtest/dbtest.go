//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// tables in FK-safe truncation order
var tables = []string{
	"webhook_error_logs",
	"appointments",
	"rental_listings",
	"blocked_dates",
	"working_hour_rules",
}

// ResetDB truncates all mutable tables so each subtest starts from a clean
// schedule and record store.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range tables {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// CountRows is a bare row counter for asserting commit effects.
func CountRows(pool *pgxpool.Pool, table string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int64
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}
