package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/regionviz/regionviz/internal/boundary"
)

var (
	boundariesName string
	boundariesURL  string
	boundariesFile string
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries",
	Short: "Import a boundary collection into the store",
	Long: `Imports region boundaries from a TIGER/Line shapefile archive or a GeoJSON
file and stores them as a named feature collection. Archives are fetched over
HTTP or FTP, unpacked, and converted to GeoJSON with GEOID and NAME properties.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if boundariesURL == "" && boundariesFile == "" {
			return eris.New("one of --url or --file is required")
		}

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate")
		}

		log := zap.L().With(zap.String("command", "boundaries"))

		shpPath := boundariesFile
		if boundariesURL != "" {
			shpPath, err = fetchArchive(cmd, boundariesURL)
			if err != nil {
				return err
			}
		}

		var (
			geojson  []byte
			features int
		)
		switch strings.ToLower(filepath.Ext(shpPath)) {
		case ".shp":
			geojson, features, err = boundary.ConvertShapefile(shpPath, boundary.ShapefileOptions{
				IDField:   cfg.Boundary.IDField,
				NameField: cfg.Boundary.NameField,
			})
			if err != nil {
				return eris.Wrap(err, "convert shapefile")
			}
		case ".geojson", ".json":
			geojson, err = os.ReadFile(shpPath)
			if err != nil {
				return eris.Wrap(err, "read geojson")
			}
			idx, err := boundary.ParseGeoJSON(geojson)
			if err != nil {
				return eris.Wrap(err, "parse geojson")
			}
			features = idx.Len()
		default:
			return eris.Errorf("unsupported boundary file type %q", filepath.Ext(shpPath))
		}

		if err := st.SaveBoundaries(ctx, boundariesName, geojson, features); err != nil {
			return eris.Wrap(err, "save boundaries")
		}

		log.Info("boundaries imported",
			zap.String("name", boundariesName),
			zap.Int("features", features),
		)
		return nil
	},
}

// fetchArchive downloads a zip archive, unpacks it, and returns the
// shapefile path inside the unpacked directory.
func fetchArchive(cmd *cobra.Command, rawURL string) (string, error) {
	tempDir := cfg.Boundary.TempDir
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", eris.Wrap(err, "create temp dir")
	}

	fetcher := boundary.NewFetcher(nil, boundary.FetchOptions{
		UserAgent: cfg.Boundary.UserAgent,
		Timeout:   time.Duration(cfg.Boundary.TimeoutSecs) * time.Second,
		RateLimit: rate.Limit(cfg.Boundary.RatePerSec),
	})

	zipPath := filepath.Join(tempDir, filepath.Base(rawURL))
	if err := fetcher.Download(cmd.Context(), rawURL, zipPath); err != nil {
		return "", eris.Wrapf(err, "download %s", rawURL)
	}

	extractDir := strings.TrimSuffix(zipPath, filepath.Ext(zipPath))
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return "", eris.Wrap(err, "create extract dir")
	}
	if err := boundary.ExtractZip(zipPath, extractDir); err != nil {
		return "", eris.Wrap(err, "extract archive")
	}

	shpPath, err := boundary.FindFileByExt(extractDir, ".shp")
	if err != nil {
		return "", eris.Wrap(err, "locate shapefile")
	}
	return shpPath, nil
}

func init() {
	boundariesCmd.Flags().StringVar(&boundariesName, "name", "county", "collection name")
	boundariesCmd.Flags().StringVar(&boundariesURL, "url", "", "shapefile archive URL (http, https, or ftp)")
	boundariesCmd.Flags().StringVar(&boundariesFile, "file", "", "local shapefile or GeoJSON path")
	rootCmd.AddCommand(boundariesCmd)
}
