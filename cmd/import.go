package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/format"
)

var (
	importDataset     string
	importConcurrency int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import catalog datasets into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate")
		}

		cat, err := loadCatalog()
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		entries := cat.Entries
		if importDataset != "" {
			e, ok := cat.Entry(importDataset)
			if !ok {
				return eris.Errorf("dataset %q not in catalog", importDataset)
			}
			entries = []dataset.CatalogEntry{e}
		}

		// Dataset files are resolved relative to the catalog.
		baseDir := filepath.Dir(cfg.Catalog.Path)

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(importConcurrency)
		for _, entry := range entries {
			g.Go(func() error {
				log := zap.L().With(zap.String("dataset", entry.ID))

				values, missing, err := readValues(filepath.Join(baseDir, entry.File), dataset.ReadOptions{
					Sheet:    entry.Sheet,
					SkipRows: entry.SkipRows,
				})
				if err != nil {
					return eris.Wrapf(err, "read %s", entry.ID)
				}

				id, err := st.SaveDataset(ctx, dataset.Dataset{
					ID:          entry.ID,
					Name:        entry.Name,
					Unit:        format.Kind(entry.Unit),
					PaletteName: entry.Palette,
					LegendSteps: entry.LegendSteps,
					Values:      values,
				})
				if err != nil {
					return eris.Wrapf(err, "save %s", entry.ID)
				}

				log.Info("dataset imported",
					zap.String("snapshot", id),
					zap.Int("regions", len(values)),
					zap.Int("missing", missing),
				)
				return nil
			})
		}

		return g.Wait()
	},
}

func init() {
	importCmd.Flags().StringVar(&importDataset, "dataset", "", "import a single catalog dataset")
	importCmd.Flags().IntVar(&importConcurrency, "concurrency", 4, "parallel dataset imports")
	rootCmd.AddCommand(importCmd)
}
