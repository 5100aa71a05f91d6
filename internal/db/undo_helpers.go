package db

import (
	"fmt"
	"log/slog"

	"backoffice/internal/model"
)

// Restore re-inserts records under their original ids.
func (s *Store) Restore(e model.Entity, records ...model.Record) error {
	sc, err := schemaFor(e)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range records {
		if err := insertRecord(tx, sc, withSchemaOrder(sc, r)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("records restored", slog.String("entity", string(e)), slog.Int("count", len(records)))
	return nil
}

// DeleteIDs removes records by id, discarding the deleted rows.
func (s *Store) DeleteIDs(e model.Entity, ids ...string) error {
	_, err := s.Delete(e, ids...)
	return err
}

// IDs returns the ids of records.
func IDs(records []model.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID()
	}
	return ids
}
