package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrations embed.FS

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,47}$`)

// ValidTableName reports whether name is safe to splice into DDL/DML.
func ValidTableName(name string) bool { return tableNameRe.MatchString(name) }

// Migrate applies the embedded migrations in file order. Each statement is idempotent.
func Migrate(ctx context.Context, dbx *sqlx.DB, table string) ([]string, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	applied := make([]string, 0, len(names))
	for _, name := range names {
		raw, err := migrations.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		q := strings.ReplaceAll(string(raw), "{{table}}", table)
		q = strings.TrimSuffix(strings.TrimSpace(q), ";")
		if _, err := dbx.ExecContext(ctx, q); err != nil {
			return applied, fmt.Errorf("exec migration %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}
