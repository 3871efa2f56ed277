package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regionviz/regionviz/internal/boundary"
	"github.com/regionviz/regionviz/internal/server"
)

var (
	servePort       int
	serveBoundaries string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close() //nolint:errcheck

		cat, err := loadCatalog()
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		// Boundaries are optional at startup; views fall back to the
		// national overview until a collection is imported.
		var idx *boundary.Index
		if data, err := st.GetBoundaries(ctx, serveBoundaries); err != nil {
			return eris.Wrap(err, "load boundaries")
		} else if data == nil {
			zap.L().Warn("boundary collection not found, views will fall back",
				zap.String("name", serveBoundaries))
		} else {
			idx, err = boundary.ParseGeoJSON(data)
			if err != nil {
				return eris.Wrapf(err, "parse boundaries %s", serveBoundaries)
			}
			zap.L().Info("boundaries loaded",
				zap.String("name", serveBoundaries),
				zap.Int("features", idx.Len()))
		}

		_, handler := server.New(server.Options{
			Store:          st,
			Catalog:        cat,
			Formatter:      newFormatter(),
			Boundaries:     idx,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveBoundaries, "boundaries", "county", "boundary collection to serve views from")
	rootCmd.AddCommand(serveCmd)
}
