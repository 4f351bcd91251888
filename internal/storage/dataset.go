package storage

import (
	"context"
	"fmt"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/model"
)

// SaveDataset replaces the stored snapshot with ds in one transaction.
// progress, when non-nil, is called with the running row count after each
// persisted record.
func (s *Store) SaveDataset(ctx context.Context, ds *dataset.Dataset, progress func(done int)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, table := range []string{"records", "unique_values", "labels"} {
		if _, execErr := tx.ExecContext(ctx, "DELETE FROM "+table); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, execErr)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			position, manufacturer, model, production_year, category,
			leather_interior, fuel_type, engine_volume, mileage,
			gearbox_type, drive_wheels, doors, wheel, airbags, predicted_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}

	records := ds.Records()
	for i := range records {
		r := &records[i]
		if _, execErr := stmt.ExecContext(ctx,
			i, r.Manufacturer, r.Model, r.ProductionYear, r.Category,
			r.LeatherInterior, r.FuelType, r.EngineVolume, r.Mileage,
			r.GearboxType, r.DriveWheels, r.Doors, r.Wheel, r.Airbags,
			r.PredictedPrice,
		); execErr != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert record %d: %w", i, execErr)
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to close record insert: %w", err)
	}

	for _, f := range model.CategoricalFields() {
		for pos, code := range ds.UniqueValues(f) {
			if _, execErr := tx.ExecContext(ctx,
				"INSERT INTO unique_values (field, position, code) VALUES (?, ?, ?)",
				string(f), pos, code,
			); execErr != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to insert unique values for %s: %w", f, execErr)
			}
		}
	}

	if labels := ds.Labels(); labels != nil {
		for f, table := range labels.Tables() {
			for label, code := range table {
				if _, execErr := tx.ExecContext(ctx,
					"INSERT INTO labels (field, label, code) VALUES (?, ?, ?)",
					string(f), label, code,
				); execErr != nil {
					_ = tx.Rollback()
					return fmt.Errorf("failed to insert label for %s: %w", f, execErr)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

// LoadDataset reads the whole snapshot back in insertion order. A database
// that was migrated but never imported yields a valid empty dataset.
func (s *Store) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	unique, err := s.loadUniqueValues(ctx)
	if err != nil {
		return nil, err
	}
	labels, err := s.loadLabels(ctx)
	if err != nil {
		return nil, err
	}

	return dataset.New(records, unique, labels), nil
}

func (s *Store) loadRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT manufacturer, model, production_year, category,
		       leather_interior, fuel_type, engine_volume, mileage,
		       gearbox_type, drive_wheels, doors, wheel, airbags,
		       predicted_price
		FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(
			&r.Manufacturer, &r.Model, &r.ProductionYear, &r.Category,
			&r.LeatherInterior, &r.FuelType, &r.EngineVolume, &r.Mileage,
			&r.GearboxType, &r.DriveWheels, &r.Doors, &r.Wheel, &r.Airbags,
			&r.PredictedPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

func (s *Store) loadUniqueValues(ctx context.Context) (map[model.Field][]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT field, code FROM unique_values ORDER BY field, position")
	if err != nil {
		return nil, fmt.Errorf("failed to query unique values: %w", err)
	}
	defer rows.Close()

	unique := make(map[model.Field][]int)
	for rows.Next() {
		var field string
		var code int
		if err := rows.Scan(&field, &code); err != nil {
			return nil, fmt.Errorf("failed to scan unique value: %w", err)
		}
		unique[model.Field(field)] = append(unique[model.Field(field)], code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unique values: %w", err)
	}
	return unique, nil
}

func (s *Store) loadLabels(ctx context.Context) (*dataset.Labels, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT field, label, code FROM labels")
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()

	tables := make(map[model.Field]map[string]int)
	for rows.Next() {
		var field, label string
		var code int
		if err := rows.Scan(&field, &label, &code); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		f := model.Field(field)
		if tables[f] == nil {
			tables[f] = make(map[string]int)
		}
		tables[f][label] = code
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	if len(tables) == 0 {
		return nil, nil
	}
	return dataset.NewLabels(tables), nil
}
