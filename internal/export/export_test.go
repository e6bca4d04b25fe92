package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/md3387/NonIdealReactor/internal/store"
)

func TestJSON(t *testing.T) {
	run := &store.Run{
		ID:          "abc",
		CreatedAt:   time.Now(),
		Mechanism:   "mech.yaml",
		Fuel:        "CH4",
		Composition: "CH4:1, O2:2",
		Temperature: 1500,
		Pressure:    1,
		Duration:    0.003,
		Step:        1.5e-6,
		Steps:       2000,
		Output:      "run_cantera.csv",
	}
	header := []string{"Time [s]", "Fuel CH4"}
	rows := [][]float64{{1.5e-6, 0.095}, {3e-6, 0.094}}

	var buf bytes.Buffer
	if err := JSON(&buf, run, header, rows); err != nil {
		t.Fatalf("export: %v", err)
	}

	var decoded RunData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != "abc" || decoded.Steps != 2000 {
		t.Errorf("metadata mismatch: %+v", decoded)
	}
	if len(decoded.Rows) != 2 || decoded.Rows[1][1] != 0.094 {
		t.Errorf("rows mismatch: %v", decoded.Rows)
	}
}

func TestSeriesSVG(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{1000, 1200, 2400, 2500}

	svg := SeriesSVG(times, values, 640, 480, "#00ff00")
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, "<path") {
		t.Error("expected an SVG document with a path element")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("expected the requested stroke color")
	}
}

func TestSeriesSVGDegenerateInput(t *testing.T) {
	if svg := SeriesSVG([]float64{1}, []float64{2}, 100, 100, "#fff"); svg != "" {
		t.Error("a single point cannot make a polyline")
	}
	if svg := SeriesSVG([]float64{1, 2}, []float64{2}, 100, 100, "#fff"); svg != "" {
		t.Error("mismatched lengths must yield no output")
	}
}
