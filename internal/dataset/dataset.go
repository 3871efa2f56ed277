// Package dataset models regional statistics datasets and loads them from
// spreadsheet files and a YAML catalog.
package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/regionviz/regionviz/internal/choropleth"
	"github.com/regionviz/regionviz/internal/format"
)

// Dataset is one named statistic keyed by region id.
type Dataset struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Unit        format.Kind         `json:"unit"`
	PaletteName string              `json:"palette"`
	LegendSteps int                 `json:"legend_steps"`
	Values      choropleth.ValueMap `json:"values"`
}

// parseValue converts a raw cell into a dataset value. Blank cells and
// unparsable text become missing values rather than errors; sparse inputs
// are the expected common case. Grouping commas and leading symbols are
// stripped first.
func parseValue(raw string) *float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
