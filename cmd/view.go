package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regionviz/regionviz/internal/boundary"
	"github.com/regionviz/regionviz/internal/viewport"
)

var viewBoundaries string

var viewCmd = &cobra.Command{
	Use:   "view <region-id>",
	Short: "Print the map view state for a region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		regionID := args[0]

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close() //nolint:errcheck

		var box *viewport.BBox
		data, err := st.GetBoundaries(ctx, viewBoundaries)
		if err != nil {
			return eris.Wrap(err, "load boundaries")
		}
		if data != nil {
			idx, err := boundary.ParseGeoJSON(data)
			if err != nil {
				return eris.Wrapf(err, "parse boundaries %s", viewBoundaries)
			}
			if b, ok := viewport.BoundingBoxFor(idx.Collection(), regionID); ok {
				box = &b
			}
		}
		if box == nil {
			zap.L().Warn("region not found, using national overview",
				zap.String("region", regionID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(viewport.ViewStateFor(box, viewport.Options{}))
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewBoundaries, "boundaries", "county", "boundary collection to search")
	rootCmd.AddCommand(viewCmd)
}
