// Package export converts recorded runs into secondary formats for
// downstream analysis tooling.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/md3387/NonIdealReactor/internal/store"
)

// RunData is the JSON shape of one recorded run plus its report table.
type RunData struct {
	ID          string      `json:"id"`
	Mechanism   string      `json:"mechanism"`
	Fuel        string      `json:"fuel"`
	Composition string      `json:"composition"`
	Temperature float64     `json:"temperature"` // [K]
	Pressure    float64     `json:"pressure"`    // [atm]
	Duration    float64     `json:"duration"`    // [s]
	Dt          float64     `json:"dt"`          // [s]
	Steps       int         `json:"steps"`
	Header      []string    `json:"header"`
	Rows        [][]float64 `json:"rows"`
}

// JSON writes the run and its table to w, indented.
func JSON(w io.Writer, run *store.Run, header []string, rows [][]float64) error {
	data := RunData{
		ID:          run.ID,
		Mechanism:   run.Mechanism,
		Fuel:        run.Fuel,
		Composition: run.Composition,
		Temperature: run.Temperature,
		Pressure:    run.Pressure,
		Duration:    run.Duration,
		Dt:          run.Step,
		Steps:       run.Steps,
		Header:      header,
		Rows:        rows,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// JSONStdout writes the run to standard output.
func JSONStdout(run *store.Run, header []string, rows [][]float64) error {
	return JSON(os.Stdout, run, header, rows)
}
