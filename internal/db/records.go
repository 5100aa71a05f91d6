package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"backoffice/internal/model"
)

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func schemaFor(e model.Entity) (model.Schema, error) {
	sc, err := model.SchemaFor(e)
	if err != nil {
		return model.Schema{}, fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	return sc, nil
}

func columnList(sc model.Schema) string {
	cols := make([]string, len(sc.Fields))
	for i, f := range sc.Fields {
		cols[i] = f.Column
	}
	return strings.Join(cols, ", ")
}

// List retrieves every record of an entity in id order.
func (s *Store) List(e model.Entity) ([]model.Record, error) {
	sc, err := schemaFor(e)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", columnList(sc), e)
	records, err := selectRecords(s.db, sc, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", e, err)
	}
	s.logger.Debug("listed records", slog.String("entity", string(e)), slog.Int("count", len(records)))
	return records, nil
}

// ListWhere retrieves records whose field equals value.
func (s *Store) ListWhere(e model.Entity, field, value string) ([]model.Record, error) {
	sc, err := schemaFor(e)
	if err != nil {
		return nil, err
	}
	spec, ok := sc.Field(field)
	if !ok {
		return nil, fmt.Errorf("unknown field %q on %s", field, e)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY id", columnList(sc), e, spec.Column)
	records, err := selectRecords(s.db, sc, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s by %s: %w", e, field, err)
	}
	return records, nil
}

// Get retrieves a single record by id.
func (s *Store) Get(e model.Entity, id string) (model.Record, error) {
	sc, err := schemaFor(e)
	if err != nil {
		return model.Record{}, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columnList(sc), e)
	records, err := selectRecords(s.db, sc, query, id)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to get %s %s: %w", sc.Singular, id, err)
	}
	if len(records) == 0 {
		return model.Record{}, fmt.Errorf("%s %s: %w", sc.Singular, id, ErrNotFound)
	}
	return records[0], nil
}

// Insert stores a new record under the next free id and returns it.
func (s *Store) Insert(e model.Entity, r model.Record) (model.Record, error) {
	sc, err := schemaFor(e)
	if err != nil {
		return model.Record{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := nextID(tx, sc)
	if err != nil {
		return model.Record{}, err
	}
	created := withSchemaOrder(sc, r.With("id", model.String(id)))
	if err := insertRecord(tx, sc, created); err != nil {
		return model.Record{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Record{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("record inserted", slog.String("entity", string(e)), slog.String("id", id))
	return created, nil
}

// Update replaces the stored fields of an existing record.
func (s *Store) Update(e model.Entity, r model.Record) error {
	sc, err := schemaFor(e)
	if err != nil {
		return err
	}

	var sets []string
	var args []any
	for _, f := range sc.EditableFields() {
		sets = append(sets, f.Column+" = ?")
		args = append(args, sqlValue(f, r.Value(f.Name)))
	}
	args = append(args, r.ID())

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", e, strings.Join(sets, ", "))
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", sc.Singular, r.ID(), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %s: %w", sc.Singular, r.ID(), ErrNotFound)
	}

	s.logger.Info("record updated", slog.String("entity", string(e)), slog.String("id", r.ID()))
	return nil
}

// Delete removes records by id and returns the deleted records in id order.
func (s *Store) Delete(e model.Entity, ids ...string) ([]model.Record, error) {
	sc, err := schemaFor(e)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id IN (%s) ORDER BY id", columnList(sc), e, placeholders)
	deleted, err := selectRecords(tx, sc, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s before delete: %w", e, err)
	}

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", e, placeholders), args...); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", e, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("records deleted", slog.String("entity", string(e)), slog.Int("count", len(deleted)))
	return deleted, nil
}

func selectRecords(q queryer, sc model.Schema, query string, args ...any) ([]model.Record, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Record
	for rows.Next() {
		r, err := scanRecord(rows, sc)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}

func scanRecord(rows *sql.Rows, sc model.Schema) (model.Record, error) {
	dest := make([]any, len(sc.Fields))
	for i, f := range sc.Fields {
		if f.Kind == model.FieldNumber {
			dest[i] = new(sql.NullFloat64)
		} else {
			dest[i] = new(sql.NullString)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return model.Record{}, fmt.Errorf("failed to scan %s row: %w", sc.Entity, err)
	}

	fields := make([]model.Field, len(sc.Fields))
	for i, f := range sc.Fields {
		v := model.Null()
		switch d := dest[i].(type) {
		case *sql.NullFloat64:
			if d.Valid {
				v = model.Number(d.Float64)
			}
		case *sql.NullString:
			if d.Valid {
				v = model.String(d.String)
			}
		}
		fields[i] = model.F(f.Name, v)
	}
	return model.NewRecord(fields...), nil
}

func insertRecord(q queryer, sc model.Schema, r model.Record) error {
	args := make([]any, len(sc.Fields))
	for i, f := range sc.Fields {
		args[i] = sqlValue(f, r.Value(f.Name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sc.Fields)), ",")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", sc.Entity, columnList(sc), placeholders)
	if _, err := q.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", sc.Singular, r.ID(), err)
	}
	return nil
}

func sqlValue(f model.FieldSpec, v model.Value) any {
	if v.IsNull() {
		return nil
	}
	if f.Kind == model.FieldNumber {
		if n, ok := v.AsNumber(); ok {
			return n
		}
		if n, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return n
		}
		return nil
	}
	if v.String() == "" {
		return nil
	}
	return v.String()
}

// withSchemaOrder reorders r's fields to the schema's field order.
func withSchemaOrder(sc model.Schema, r model.Record) model.Record {
	fields := make([]model.Field, len(sc.Fields))
	for i, f := range sc.Fields {
		fields[i] = model.F(f.Name, r.Value(f.Name))
	}
	return model.NewRecord(fields...)
}

// nextID returns the id following the highest numbered id of an entity,
// keeping the digit width of existing ids ("ORD-008" -> "ORD-009").
func nextID(q queryer, sc model.Schema) (string, error) {
	rows, err := q.Query(fmt.Sprintf("SELECT id FROM %s", sc.Entity))
	if err != nil {
		return "", fmt.Errorf("failed to read %s ids: %w", sc.Entity, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating ids: %w", err)
	}
	return NextID(sc.IDPrefix, ids), nil
}

// NextID computes the next id for prefix given the existing ids.
func NextID(prefix string, existing []string) string {
	maxN := 0
	width := 3
	for _, id := range existing {
		digits, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
		if len(digits) > width {
			width = len(digits)
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, maxN+1)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
