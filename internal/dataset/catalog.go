package dataset

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/regionviz/regionviz/internal/choropleth"
	"github.com/regionviz/regionviz/internal/format"
)

// CatalogEntry describes one dataset in the catalog file.
type CatalogEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Unit        string `yaml:"unit"`
	Palette     string `yaml:"palette"`
	LegendSteps int    `yaml:"legend_steps"`
	Sheet       string `yaml:"sheet"`
	SkipRows    int    `yaml:"skip_rows"`
}

// Catalog is the parsed dataset catalog: dataset entries plus the named
// palettes they reference. Palettes are parsed once at load and never
// mutated afterwards.
type Catalog struct {
	Entries  []CatalogEntry
	Palettes map[string]choropleth.Palette
}

// catalogFile is the on-disk YAML shape.
type catalogFile struct {
	Datasets []CatalogEntry      `yaml:"datasets"`
	Palettes map[string][]string `yaml:"palettes"`
}

const defaultLegendSteps = 5

// LoadCatalog reads and validates a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read catalog")
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML bytes. Every dataset must reference a
// declared palette; legend steps default to 5 and units default to plain
// numbers.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "dataset: parse catalog")
	}

	palettes := make(map[string]choropleth.Palette, len(file.Palettes))
	for name, hexes := range file.Palettes {
		p, err := choropleth.ParsePalette(hexes)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: palette %q", name)
		}
		palettes[name] = p
	}

	seen := make(map[string]bool, len(file.Datasets))
	for i := range file.Datasets {
		e := &file.Datasets[i]
		if e.ID == "" {
			return nil, eris.Errorf("dataset: catalog entry %d has no id", i)
		}
		if seen[e.ID] {
			return nil, eris.Errorf("dataset: duplicate catalog id %q", e.ID)
		}
		seen[e.ID] = true
		if _, ok := palettes[e.Palette]; !ok {
			return nil, eris.Errorf("dataset: %q references unknown palette %q", e.ID, e.Palette)
		}
		if e.LegendSteps <= 0 {
			e.LegendSteps = defaultLegendSteps
		}
		if e.Unit == "" {
			e.Unit = string(format.KindNumber)
		}
	}

	return &Catalog{Entries: file.Datasets, Palettes: palettes}, nil
}

// Entry returns the catalog entry with the given id.
func (c *Catalog) Entry(id string) (CatalogEntry, bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
