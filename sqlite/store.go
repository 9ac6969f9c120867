// Package sqlite persists frames to a SQLite database and loads them back.
// Column types are recorded in a companion schema table so a loaded frame
// has the same column types as the one that was saved.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/asaidimu/go-tabula/core/frame"
	"go.uber.org/zap"
)

// schemaTable records the column layout of every saved frame.
const schemaTable = "_tabula_columns"

// Store reads and writes frames in a SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the SQLite database at path and prepares the
// schema table. Use ":memory:" for an in-memory database.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %q: %w", path, err)
	}
	s := NewStore(db, logger)
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing database handle. A nil logger falls back to a
// no-op logger.
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) init() error {
	_, err := s.db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %q ("table_name" TEXT, "name" TEXT, "pos" INTEGER, "type" TEXT,
		 PRIMARY KEY ("table_name", "name"))`, schemaTable))
	if err != nil {
		return fmt.Errorf("creating schema table: %w", err)
	}
	return nil
}

// sqliteType maps a frame column type to a SQLite column type.
func sqliteType(t frame.Type) string {
	switch t {
	case frame.Bool, frame.Int:
		return "INTEGER"
	case frame.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Save writes a frame as a table, replacing any previous contents. The
// write is transactional: either the whole frame is saved or nothing is.
func (s *Store) Save(ctx context.Context, table string, f *frame.Frame) error {
	if err := s.init(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)); err != nil {
		return fmt.Errorf("dropping table %q: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q WHERE "table_name" = ?`, schemaTable), table); err != nil {
		return fmt.Errorf("clearing schema of %q: %w", table, err)
	}

	names := f.Names()
	types := f.Types()
	defs := make([]string, len(names))
	for i, name := range names {
		defs[i] = fmt.Sprintf("%q %s", name, sqliteType(types[i]))
	}
	createSQL := fmt.Sprintf(`CREATE TABLE %q (%s)`, table, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("creating table %q: %w", table, err)
	}

	for i, name := range names {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %q ("table_name", "name", "pos", "type") VALUES (?, ?, ?, ?)`, schemaTable),
			table, name, i, string(types[i])); err != nil {
			return fmt.Errorf("recording schema of %q: %w", table, err)
		}
	}

	quoted := make([]string, len(names))
	holders := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
		holders[i] = "?"
	}
	insertSQL := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		table, strings.Join(quoted, ", "), strings.Join(holders, ", "))

	for r := 0; r < f.Nrow(); r++ {
		row := f.Row(r)
		args := make([]any, len(names))
		for i, name := range names {
			args[i] = row[name]
		}
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return fmt.Errorf("inserting row %d into %q: %w", r, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save of %q: %w", table, err)
	}
	s.logger.Info("Saved frame",
		zap.String("table", table),
		zap.Int("rows", f.Nrow()),
		zap.Int("cols", f.Ncol()))
	return nil
}

// Load reads a previously saved table back into a frame, restoring the
// recorded column order and types.
func (s *Store) Load(ctx context.Context, table string) (*frame.Frame, error) {
	names, types, err := s.loadSchema(ctx, table)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %q`, strings.Join(quoted, ", "), table))
	if err != nil {
		return nil, fmt.Errorf("querying table %q: %w", table, err)
	}
	defer rows.Close()

	vals := make([][]any, len(names))
	for rows.Next() {
		scanned := make([]any, len(names))
		args := make([]any, len(names))
		for i := range scanned {
			args[i] = &scanned[i]
		}
		if err := rows.Scan(args...); err != nil {
			return nil, fmt.Errorf("scanning row of %q: %w", table, err)
		}
		for i, v := range scanned {
			vals[i] = append(vals[i], normalize(v, types[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows of %q: %w", table, err)
	}

	cols := make([]*frame.Series, len(names))
	for i, name := range names {
		col, err := frame.NewSeries(vals[i], types[i], name)
		if err != nil {
			return nil, fmt.Errorf("rebuilding column %q: %w", name, err)
		}
		cols[i] = col
	}
	return frame.New(cols...)
}

// loadSchema reads the recorded column layout of a table.
func (s *Store) loadSchema(ctx context.Context, table string) ([]string, []frame.Type, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT "name", "type" FROM %q WHERE "table_name" = ? ORDER BY "pos"`, schemaTable),
		table)
	if err != nil {
		return nil, nil, fmt.Errorf("reading schema of %q: %w", table, err)
	}
	defer rows.Close()

	var names []string
	var types []frame.Type
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, nil, fmt.Errorf("scanning schema of %q: %w", table, err)
		}
		names = append(names, name)
		types = append(types, frame.Type(typ))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no saved frame named %q", table)
	}
	return names, types, nil
}

// normalize converts driver values back to frame values for the recorded
// column type. SQLite stores booleans as 0/1 and text may scan as []byte.
func normalize(v any, t frame.Type) any {
	if v == nil {
		return nil
	}
	switch t {
	case frame.Bool:
		if n, ok := v.(int64); ok {
			return n != 0
		}
	case frame.Int:
		if n, ok := v.(int64); ok {
			return int(n)
		}
	case frame.Float:
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		}
	case frame.String:
		if b, ok := v.([]byte); ok {
			return string(b)
		}
	}
	return v
}
