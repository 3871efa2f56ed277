package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/regionviz/regionviz/internal/choropleth"
)

// ReadOptions configures spreadsheet import. The zero value reads the first
// sheet with region ids in column 0 and values in column 1.
type ReadOptions struct {
	Sheet    string // sheet name; empty means first sheet
	SkipRows int    // header rows to skip
	IDCol    int    // region id column index
	ValueCol int    // value column index, defaults to IDCol+1 when zero
}

func (o ReadOptions) valueCol() int {
	if o.ValueCol == 0 {
		return o.IDCol + 1
	}
	return o.ValueCol
}

// ReadXLSX imports a two-column region-id/value mapping from an XLSX file.
// Blank or unparsable values are recorded as missing, not rejected; the
// second return is the count of missing entries.
func ReadXLSX(path string, opts ReadOptions) (choropleth.ValueMap, int, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, 0, eris.Wrap(err, "dataset: open xlsx")
	}

	sheet, err := pickSheet(f, opts.Sheet)
	if err != nil {
		return nil, 0, err
	}

	values := make(choropleth.ValueMap)
	missing := 0
	valueCol := opts.valueCol()
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		if len(row.Cells) <= opts.IDCol {
			continue
		}
		id := strings.TrimSpace(row.Cells[opts.IDCol].Value)
		if id == "" {
			continue
		}
		var raw string
		if len(row.Cells) > valueCol {
			raw = row.Cells[valueCol].Value
		}
		v := parseValue(raw)
		if v == nil {
			missing++
		}
		values[id] = v
	}
	return values, missing, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name == "" {
		if len(f.Sheets) == 0 {
			return nil, eris.New("dataset: xlsx has no sheets")
		}
		return f.Sheets[0], nil
	}
	sheet, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("dataset: sheet %q not found", name)
	}
	return sheet, nil
}
