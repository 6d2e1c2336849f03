package export

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/arloliu/tsfuse/errs"
	"github.com/arloliu/tsfuse/internal/collision"
	"github.com/arloliu/tsfuse/table"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WriteSQLite replaces tableName in the SQLite database at dsn with the
// contents of t and returns the number of rows inserted.
//
// Every header cell becomes a TEXT column. Blank header names become col_N
// and repeated names get a numeric suffix. Empty cells and cells missing
// from short rows are stored as NULL; cells beyond the header width are
// ignored. All rows are inserted in one transaction.
func WriteSQLite(ctx context.Context, t *table.Table, dsn, tableName string) (int, error) {
	if err := table.RequireHeader(t); err != nil {
		return 0, err
	}
	if strings.TrimSpace(dsn) == "" {
		return 0, fmt.Errorf("%w: sqlite DSN must not be empty", errs.ErrInvalidConfiguration)
	}
	if !identifier.MatchString(tableName) {
		return 0, fmt.Errorf("%w: sqlite table name %q", errs.ErrInvalidConfiguration, tableName)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return 0, fmt.Errorf("sqlite: open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("sqlite: ping: %w", err)
	}

	columns := columnNames(t.Header())
	quoted := make([]string, len(columns))
	defs := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		defs[i] = quoted[i] + " TEXT"
		placeholders[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(tableName)); err != nil {
		return 0, fmt.Errorf("sqlite: drop %s: %w", tableName, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("sqlite: create %s: %w", tableName, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(tableName), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	inserted := 0
	for i, row := range t.Data() {
		for j := range args {
			if j < len(row) && row[j] != "" {
				args[j] = row[j]
			} else {
				args[j] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return inserted, fmt.Errorf("sqlite: insert row %d: %w", i+1, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}

	return inserted, nil
}

// columnNames turns a header into unique, non-empty column names.
func columnNames(header table.Row) []string {
	tracker := collision.NewTracker()
	names := make([]string, len(header))

	for i, h := range header {
		base := strings.TrimSpace(h)
		if base == "" {
			base = "col_" + strconv.Itoa(i+1)
		}
		// sqlite column names are case-insensitive
		name := base
		for n := 2; tracker.Track(strings.ToLower(name)); n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		names[i] = name
	}

	return names
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
