package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"backoffice/internal/model"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownEntity is returned for an entity without a schema.
	ErrUnknownEntity = errors.New("unknown entity")
)

// MemoryDSN keeps the whole store in process memory.
const MemoryDSN = ":memory:"

// Store is the record store behind every list screen.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the SQLite database and initializes the schema.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every ":memory:" connection is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schemaSQL()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug("store opened", slog.String("dsn", dsn))
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func schemaSQL() string {
	var b strings.Builder
	for _, e := range model.Entities {
		sc := model.MustSchema(e)
		cols := make([]string, 0, len(sc.Fields))
		for _, f := range sc.Fields {
			cols = append(cols, "    "+columnDef(f))
		}
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n%s\n);\n", e, strings.Join(cols, ",\n"))
	}
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_payments_order_id ON payments(order_id);\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer);\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(date DESC);\n")
	return b.String()
}

func columnDef(f model.FieldSpec) string {
	if f.Name == "id" {
		return f.Column + " TEXT PRIMARY KEY"
	}
	typ := "TEXT"
	if f.Kind == model.FieldNumber {
		typ = "REAL"
	}
	def := f.Column + " " + typ
	if f.Required {
		def += " NOT NULL"
	}
	if len(f.Options) > 0 {
		quoted := make([]string, len(f.Options))
		for i, o := range f.Options {
			quoted[i] = "'" + o + "'"
		}
		def += fmt.Sprintf(" CHECK(%s IN (%s))", f.Column, strings.Join(quoted, ","))
	}
	return def
}
