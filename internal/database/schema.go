package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"statutes/internal/logging"
)

// ErrTableMissing is returned by VerifySchema when the statute table does
// not exist or is not visible to the connecting role.
var ErrTableMissing = errors.New("statute table not found")

// columnsQuery lists the live columns of a possibly schema-qualified table.
// to_regclass yields NULL for an unknown table, which matches no rows.
const columnsQuery = `SELECT a.attname FROM pg_catalog.pg_attribute a ` +
	`WHERE a.attrelid = to_regclass($1) AND a.attnum > 0 AND NOT a.attisdropped`

// VerifySchema checks, without writing anything, that table exists and
// carries the columns the statute queries read.
func VerifySchema(ctx context.Context, db *sql.DB, table, jurisdictionField string, logger *logging.Logger) error {
	start := time.Now()
	if logger == nil {
		logger = logging.Default()
	}
	logger.Info("database", "db_schema_check", map[string]any{"status": "starting", "table": table})

	fail := func(err error) error {
		logger.Error("database", "db_schema_check_failed", err, map[string]any{
			"status":      "error",
			"table":       table,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}

	rows, err := db.QueryContext(ctx, columnsQuery, table)
	if err != nil {
		return fail(fmt.Errorf("query columns of %s: %w", table, err))
	}
	defer rows.Close()

	var have []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fail(fmt.Errorf("scan column: %w", err))
		}
		have = append(have, name)
	}
	if err := rows.Err(); err != nil {
		return fail(fmt.Errorf("iterate columns: %w", err))
	}
	if len(have) == 0 {
		return fail(fmt.Errorf("%w: %s", ErrTableMissing, table))
	}

	var missing []string
	for _, col := range []string{"id", "type", jurisdictionField, "properties"} {
		if !slices.Contains(have, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fail(fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", ")))
	}

	logger.Info("database", "db_schema_check", map[string]any{
		"status":      "success",
		"table":       table,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
