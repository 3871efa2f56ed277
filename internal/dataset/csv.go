package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/regionviz/regionviz/internal/choropleth"
)

// ReadCSV imports a two-column region-id/value mapping from a CSV file,
// under the same missing-value policy as ReadXLSX.
func ReadCSV(path string, opts ReadOptions) (choropleth.ValueMap, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, eris.Wrap(err, "dataset: open csv")
	}
	defer f.Close() //nolint:errcheck

	return readCSV(f, opts)
}

func readCSV(r io.Reader, opts ReadOptions) (choropleth.ValueMap, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	values := make(choropleth.ValueMap)
	missing := 0
	valueCol := opts.valueCol()
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, eris.Wrap(err, "dataset: read csv row")
		}
		rowNum++
		if rowNum <= opts.SkipRows {
			continue
		}
		if len(record) <= opts.IDCol {
			continue
		}
		id := strings.TrimSpace(record[opts.IDCol])
		if id == "" {
			continue
		}
		var raw string
		if len(record) > valueCol {
			raw = record[valueCol]
		}
		v := parseValue(raw)
		if v == nil {
			missing++
		}
		values[id] = v
	}
	return values, missing, nil
}
