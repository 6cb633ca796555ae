package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/playstats/internal/core/storage"
	"github.com/aevon-lab/playstats/internal/migrations"
	_ "github.com/lib/pq"  // Register postgres driver
	_ "modernc.org/sqlite" // Register sqlite driver
)

const connectPingTimeout = 5 * time.Second

var (
	_ storage.PlayWriter    = (*Store)(nil)
	_ storage.CounterReader = (*Store)(nil)
)

// Options configure Open.
type Options struct {
	// Dialect is "sqlite" or "postgres".
	Dialect string
	// DSN is a file path for sqlite (":memory:" allowed) or a connection string for postgres.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	// AutoMigrate applies pending versioned migrations in EnsureSchema.
	AutoMigrate bool
}

// Store implements the journal and counter tables over database/sql.
type Store struct {
	db          *sql.DB
	dialect     string
	autoMigrate bool
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the backing database and verifies it answers.
// Schema work is left to EnsureSchema so callers decide how to treat its failures.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Dialect == "" {
		opts.Dialect = migrations.DialectSQLite
	}
	driver, err := driverName(opts.Dialect)
	if err != nil {
		return nil, err
	}

	dsn := opts.DSN
	if opts.Dialect == migrations.DialectSQLite {
		dsn, err = sqliteDSN(opts.DSN)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", opts.Dialect, err)
	}

	maxOpen := opts.MaxOpenConns
	if opts.Dialect == migrations.DialectSQLite && opts.DSN == memoryPath {
		// A memory database lives only as long as its last connection.
		maxOpen = 1
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.DSN != memoryPath {
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", opts.Dialect, err)
	}

	slog.Info("[SQLStore] Connection opened",
		"dialect", opts.Dialect,
		"max_open_conns", maxOpen,
		"max_idle_conns", opts.MaxIdleConns)

	return &Store{db: db, dialect: opts.Dialect, autoMigrate: opts.AutoMigrate}, nil
}

// New wraps an existing connection. The caller keeps ownership of opening it;
// Close still closes it.
func New(db *sql.DB, dialect string) *Store {
	return &Store{db: db, dialect: dialect, autoMigrate: true}
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect reports which SQL dialect the store speaks.
func (s *Store) Dialect() string {
	return s.dialect
}

// Ping checks the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema applies the versioned migrations and then the additive column
// migrations. Calling it repeatedly is safe; duplicate column failures are
// expected on already-migrated stores and swallowed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := migrations.RunMigrations(s.db, s.dialect, s.autoMigrate); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	for _, stmt := range additiveColumns(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("ensure schema: additive column: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	slog.Info("[SQLStore] Connection closed gracefully")
	return nil
}

func (s *Store) q(query string) string {
	return rebind(s.dialect, query)
}
