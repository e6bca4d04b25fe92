// Package report serializes an accumulated run to the delimited output
// file. The header and every data row are generated from the same ordered
// catalog, so a column-count mismatch cannot be assembled in the first place.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/md3387/NonIdealReactor/internal/catalog"
	"github.com/md3387/NonIdealReactor/internal/history"
)

// TimeLabel is the first column header.
const TimeLabel = "Time [s]"

// OutputPath derives the report filename from the user-supplied base
// string. Surrounding single or double quotes are stripped; "20240104" and
// '20240104' both become 20240104_cantera.csv.
func OutputPath(filebase string) string {
	base := strings.TrimSpace(filebase)
	base = strings.Trim(base, `"'`)
	return base + "_cantera.csv"
}

// Write serializes the series to path. A destination that cannot be created
// or written is surfaced to the caller.
func Write(path string, cat catalog.Catalog, series *history.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteTo(file, cat, series); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

// WriteTo writes the header row of semantic labels followed by one data row
// per sample: elapsed time, then one mole fraction per catalog slot.
func WriteTo(w io.Writer, cat catalog.Catalog, series *history.Series) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, cat.Len()+1)
	header = append(header, TimeLabel)
	header = append(header, cat.Labels()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, r := range series.Rows() {
		if len(r.X) != cat.Len() {
			// Rows are sampled from the same catalog that labels the
			// columns; a width mismatch is a programming error.
			panic(fmt.Sprintf("report: row width %d does not match catalog size %d", len(r.X), cat.Len()))
		}

		row[0] = formatFloat(r.Time)
		for i, x := range r.X {
			row[i+1] = formatFloat(x)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read loads a previously written report: the header row and the numeric
// data rows. Used by the plot and export commands.
func Read(path string) ([]string, [][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("report: open %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("report: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("report: %s is empty", path)
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("report: %s: bad value %q: %w", path, field, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

// formatFloat uses the shortest representation that round-trips, keeping
// re-runs with identical inputs byte-identical.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
