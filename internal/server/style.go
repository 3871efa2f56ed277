package server

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/regionviz/regionviz/internal/choropleth"
	"github.com/regionviz/regionviz/internal/dataset"
	"github.com/regionviz/regionviz/internal/format"
)

// LegendEntry is one legend bucket with display labels resolved.
type LegendEntry struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Style is the full choropleth style document for one dataset snapshot:
// a fill color per region, the legend, and descriptive statistics.
type Style struct {
	DatasetID   string             `json:"dataset_id"`
	Name        string             `json:"name"`
	Unit        format.Kind        `json:"unit"`
	Range       choropleth.Range   `json:"range"`
	MinLabel    string             `json:"min_label"`
	MaxLabel    string             `json:"max_label"`
	NoDataColor string             `json:"no_data_color"`
	Colors      map[string]string  `json:"colors"`
	Legend      []LegendEntry      `json:"legend"`
	Summary     choropleth.Summary `json:"summary"`
	CreatedAt   time.Time          `json:"created_at,omitzero"`
}

// BuildStyle computes the style document for a dataset under a palette.
func BuildStyle(ds dataset.Dataset, p choropleth.Palette, f *format.Formatter) Style {
	r := choropleth.ExtractRange(ds.Values)

	colors := make(map[string]string, len(ds.Values))
	for id, c := range choropleth.ColorsFor(ds.Values, r, p) {
		colors[id] = c.Hex()
	}

	intervals := choropleth.BuildLegend(r, ds.LegendSteps, p)
	legend := make([]LegendEntry, 0, len(intervals))
	for _, iv := range intervals {
		lo := labelValue(iv.Lower, ds.Unit)
		hi := labelValue(iv.Upper, ds.Unit)
		legend = append(legend, LegendEntry{
			Lower: iv.Lower,
			Upper: iv.Upper,
			Label: f.Format(&lo, ds.Unit) + " – " + f.Format(&hi, ds.Unit),
			Color: iv.Color.Hex(),
		})
	}

	summary := choropleth.Summarize(ds.Values)

	minLabel, maxLabel := format.NoValue, format.NoValue
	if summary.Count > 0 {
		lo := labelValue(r.Min, ds.Unit)
		hi := labelValue(r.Max, ds.Unit)
		minLabel = f.Format(&lo, ds.Unit)
		maxLabel = f.Format(&hi, ds.Unit)
	}

	return Style{
		DatasetID:   ds.ID,
		Name:        ds.Name,
		Unit:        ds.Unit,
		Range:       r,
		MinLabel:    minLabel,
		MaxLabel:    maxLabel,
		NoDataColor: choropleth.NoData.Hex(),
		Colors:      colors,
		Legend:      legend,
		Summary:     summary,
	}
}

// labelValue trims float noise from computed bucket bounds before display.
// Percent values keep full precision; the formatter already clamps their
// fraction digits.
func labelValue(v float64, kind format.Kind) float64 {
	if kind == format.KindPercent {
		return v
	}
	return math.Round(v*100) / 100
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "id")

	rec, err := s.store.GetDataset(r.Context(), datasetID)
	if err != nil {
		s.log.Error("get dataset", zap.String("dataset", datasetID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "get dataset failed")
		return
	}
	if rec == nil {
		s.writeError(w, http.StatusNotFound, "dataset not found")
		return
	}

	p, ok := s.palette(rec.Dataset.PaletteName)
	if !ok {
		s.log.Error("unknown palette",
			zap.String("dataset", datasetID),
			zap.String("palette", rec.Dataset.PaletteName))
		s.writeError(w, http.StatusInternalServerError, "dataset references unknown palette")
		return
	}

	if raw := r.URL.Query().Get("steps"); raw != "" {
		steps, err := strconv.Atoi(raw)
		if err != nil || steps < 1 {
			s.writeError(w, http.StatusBadRequest, "steps must be a positive integer")
			return
		}
		rec.Dataset.LegendSteps = steps
	}

	style := BuildStyle(rec.Dataset, p, s.formatter)
	style.CreatedAt = rec.CreatedAt
	s.writeJSON(w, http.StatusOK, style)
}

// palette resolves a named palette from the catalog.
func (s *Server) palette(name string) (choropleth.Palette, bool) {
	if s.catalog == nil {
		return nil, false
	}
	p, ok := s.catalog.Palettes[name]
	return p, ok
}
