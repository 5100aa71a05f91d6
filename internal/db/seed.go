package db

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"backoffice/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Fixture maps an entity name to its rows as decoded from YAML.
type Fixture map[model.Entity][]map[string]any

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	for e := range f {
		if _, err := schemaFor(e); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// LoadFixture reads a fixture file, or the built-in fixture when path is empty.
func LoadFixture(path string) (Fixture, error) {
	if path == "" {
		return ParseFixture(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// Records converts the fixture rows of e into records.
func (f Fixture) Records(e model.Entity) ([]model.Record, error) {
	sc, err := schemaFor(e)
	if err != nil {
		return nil, err
	}
	rows := f[e]
	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		fields := make([]model.Field, 0, len(sc.Fields))
		for _, spec := range sc.Fields {
			v, err := fixtureValue(spec, row[spec.Name])
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", e, i, err)
			}
			fields = append(fields, model.F(spec.Name, v))
		}
		records = append(records, model.NewRecord(fields...))
	}
	return records, nil
}

func fixtureValue(spec model.FieldSpec, raw any) (model.Value, error) {
	if raw == nil {
		return model.Null(), nil
	}
	if spec.Kind == model.FieldNumber {
		switch n := raw.(type) {
		case int:
			return model.Int(int64(n)), nil
		case int64:
			return model.Int(n), nil
		case float64:
			return model.Number(n), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return model.Null(), fmt.Errorf("field %s: %q is not a number", spec.Name, n)
			}
			return model.Number(f), nil
		default:
			return model.Null(), fmt.Errorf("field %s: unsupported value %v", spec.Name, raw)
		}
	}
	return model.String(fmt.Sprint(raw)), nil
}

// Seed loads fixture rows into every empty table.
func (s *Store) Seed(f Fixture) error {
	for _, e := range model.Entities {
		var count int
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", e)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count %s: %w", e, err)
		}
		if count > 0 {
			s.logger.Debug("seed skipped", slog.String("entity", string(e)), slog.Int("existing", count))
			continue
		}
		records, err := f.Records(e)
		if err != nil {
			return err
		}
		if err := s.Restore(e, records...); err != nil {
			return fmt.Errorf("failed to seed %s: %w", e, err)
		}
	}
	return nil
}
