package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/regionviz/regionviz/internal/server"
)

var styleCmd = &cobra.Command{
	Use:   "style <dataset-id>",
	Short: "Print the choropleth style document for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		datasetID := args[0]

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close() //nolint:errcheck

		cat, err := loadCatalog()
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		rec, err := st.GetDataset(ctx, datasetID)
		if err != nil {
			return eris.Wrapf(err, "get dataset %s", datasetID)
		}
		if rec == nil {
			return eris.Errorf("dataset %q not found", datasetID)
		}

		p, ok := cat.Palettes[rec.Dataset.PaletteName]
		if !ok {
			return eris.Errorf("dataset %q references unknown palette %q",
				datasetID, rec.Dataset.PaletteName)
		}

		style := server.BuildStyle(rec.Dataset, p, newFormatter())
		style.CreatedAt = rec.CreatedAt

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(style)
	},
}

func init() {
	rootCmd.AddCommand(styleCmd)
}
