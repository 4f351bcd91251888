package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/bakhva/appraise/internal/config"
	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/match"
	"github.com/bakhva/appraise/internal/model"
	"github.com/bakhva/appraise/internal/storage"
)

var snapshotExtensions = map[string]bool{
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// isSnapshotPath reports whether a dataset path points at a SQLite snapshot
// rather than a JSON document.
func isSnapshotPath(path string) bool {
	return snapshotExtensions[strings.ToLower(filepath.Ext(path))]
}

// datasetPath resolves where the dataset comes from: the --dataset flag or
// dataset.path config first, then the snapshot database location.
func datasetPath() string {
	if p := viper.GetString("dataset.path"); p != "" {
		return config.ExpandPath(p)
	}
	if p := viper.GetString("database.path"); p != "" {
		return config.ExpandPath(p)
	}
	return config.DefaultDatabasePath()
}

// openDataset loads the configured dataset, whatever its encoding.
func openDataset(ctx context.Context) (*dataset.Dataset, error) {
	path := datasetPath()
	if isSnapshotPath(path) {
		return openSnapshot(ctx, path)
	}
	return openDocument(path)
}

func openDocument(path string) (*dataset.Dataset, error) {
	var labels *dataset.Labels
	if labelsPath := config.ExpandPath(viper.GetString("dataset.labels")); labelsPath != "" {
		var err error
		labels, err = dataset.LoadLabels(labelsPath)
		if err != nil {
			return nil, err
		}
	}

	ds, err := dataset.LoadDocument(path, labels)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded dataset document", "path", path, "records", ds.Summary().Count)
	return ds, nil
}

func openSnapshot(ctx context.Context, path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no dataset snapshot at %s; run 'appraise import' first or pass --dataset", path)
		}
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	ds, err := store.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded dataset snapshot", "path", path, "records", ds.Summary().Count)
	return ds, nil
}

// loadWeights applies any matching.weights.* config overrides on top of the
// tuned defaults.
func loadWeights() match.Weights {
	w := match.DefaultWeights()
	overrides := map[string]*float64{
		"manufacturer":     &w.Manufacturer,
		"model":            &w.Model,
		"category":         &w.Category,
		"fuel_type":        &w.FuelType,
		"gearbox_type":     &w.GearboxType,
		"drive_wheels":     &w.DriveWheels,
		"leather_interior": &w.LeatherInterior,
		"engine_volume":    &w.EngineVolume,
		"mileage":          &w.Mileage,
		"airbags":          &w.Airbags,
		"production_year":  &w.ProductionYear,
	}
	for key, target := range overrides {
		full := "matching.weights." + key
		if viper.IsSet(full) {
			*target = viper.GetFloat64(full)
		}
	}
	return w
}

func displayCurrency() string {
	return viper.GetString("display.currency")
}

// parseFieldValue turns CLI input for a categorical field into its code.
// Plain integers are taken as raw codes; anything else must resolve through
// the label mapping.
func parseFieldValue(ds *dataset.Dataset, f model.Field, s string) (int, error) {
	if code, err := strconv.Atoi(s); err == nil {
		return code, nil
	}
	if code, ok := ds.Encode(f, s); ok {
		return code, nil
	}
	return 0, fmt.Errorf("unknown %s %q; run 'appraise values %q' to list known values",
		strings.ToLower(string(f)), s, string(f))
}

// resolveField matches user input like "fuel type" or "fuel-type" to a field.
func resolveField(name string) (model.Field, bool) {
	normalized := strings.ReplaceAll(name, "-", " ")
	for _, f := range model.Fields() {
		if strings.EqualFold(string(f), normalized) {
			return f, true
		}
	}
	return "", false
}
