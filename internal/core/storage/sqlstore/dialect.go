package sqlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aevon-lab/playstats/internal/migrations"
	"github.com/google/uuid"
)

const memoryPath = ":memory:"

// driverName maps a dialect to its database/sql driver.
func driverName(dialect string) (string, error) {
	switch dialect {
	case migrations.DialectSQLite:
		return "sqlite", nil
	case migrations.DialectPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dialect)
	}
}

// sqliteDSN turns a file path into a modernc DSN with the pragmas the writer relies on.
// The parent directory is created when missing. Every ":memory:" store gets its own
// named database so two stores never see each other's rows.
func sqliteDSN(path string) (string, error) {
	if path == memoryPath {
		return fmt.Sprintf("file:playstats-%s?mode=memory&cache=shared", uuid.NewString()), nil
	}
	if strings.HasPrefix(path, "file:") {
		return path, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o750); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		filepath.ToSlash(absPath),
	), nil
}

// rebind rewrites ? placeholders to $1..$n for postgres. Queries in this
// package never contain a literal '?' so no quoting rules apply.
func rebind(dialect, query string) string {
	if dialect != migrations.DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// additiveColumns are the idempotent column migrations applied after the
// versioned ones. Installations created before the path column existed pick it up here.
func additiveColumns(dialect string) []string {
	if dialect == migrations.DialectPostgres {
		return []string{
			`ALTER TABLE play_log ADD COLUMN IF NOT EXISTS path TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE monthly_count ADD COLUMN IF NOT EXISTS path TEXT NOT NULL DEFAULT ''`,
		}
	}
	return []string{
		`ALTER TABLE play_log ADD COLUMN path TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE monthly_count ADD COLUMN path TEXT NOT NULL DEFAULT ''`,
	}
}

func isDuplicateColumn(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}
