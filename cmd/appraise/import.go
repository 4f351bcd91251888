package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bakhva/appraise/internal/cli"
	"github.com/bakhva/appraise/internal/config"
	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <dataset.json>",
		Short: "Import a dataset document into the local snapshot",
		Long: `Import parses a JSON dataset document and writes it into the SQLite
snapshot, so later lookups skip JSON parsing. When a label mapping is
given with --labels it is embedded in the snapshot too.

The prediction commands never modify the snapshot; re-run import to
replace it with a newer document.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("db", "", "snapshot path (default: config database.path)")
	cmd.Flags().Bool("force", false, "replace an existing snapshot")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var labels *dataset.Labels
	if labelsPath := config.ExpandPath(viper.GetString("dataset.labels")); labelsPath != "" {
		var err error
		labels, err = dataset.LoadLabels(labelsPath)
		if err != nil {
			return err
		}
	}

	docPath := config.ExpandPath(args[0])
	ds, err := dataset.LoadDocument(docPath, labels)
	if err != nil {
		return err
	}
	count := ds.Summary().Count
	slog.Info("Parsed dataset document", "path", docPath, "records", count)

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("database.path")
	}
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	force, _ := cmd.Flags().GetBool("force")
	if _, statErr := os.Stat(dbPath); statErr == nil && !force {
		return fmt.Errorf("snapshot already exists at %s (use --force to replace it)", dbPath)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	bar := progressbar.NewOptions(count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing records...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(os.Stderr); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	err = store.SaveDataset(ctx, ds, func(done int) {
		if err := bar.Set(done); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	})
	if err != nil {
		return err
	}
	if err := bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("imported %d records into %s", count, dbPath)))
	return nil
}
