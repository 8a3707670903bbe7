package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/report"
	"farmkeep/backend/internal/stats"
	"farmkeep/backend/internal/store"
)

func exportCmd() *cobra.Command {
	var format string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <category>",
		Short: "Export a category report as CSV or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			st, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			category := args[0]
			now := time.Now()
			animals := store.Load[model.Animal](st, model.KeyLivestock)
			rows := report.Rows(animals, category)

			var name string
			switch format {
			case "csv":
				name = report.Filename(category, "csv", now)
				f, err := os.Create(filepath.Join(outDir, name))
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteCSV(f, rows); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
			case "pdf":
				name = report.Filename(category, "pdf", now)
				summary := stats.BuildCategoryReport(animals, category, now)
				pdf := report.BuildPDF(profileFromConfig(cfg), category, summary, rows, now)
				if err := os.WriteFile(filepath.Join(outDir, name), pdf, 0o644); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
			default:
				return fmt.Errorf("format must be csv or pdf, got %q", format)
			}

			color.Green("wrote %s (%d records)", filepath.Join(outDir, name), len(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or pdf")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}
