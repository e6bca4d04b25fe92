// Package history accumulates per-step reactor samples in row-major form.
package history

// Row is one simulation sample: elapsed time [s], bulk temperature [K] and
// the mole fractions of the catalog species in catalog order.
type Row struct {
	Time        float64
	Temperature float64
	X           []float64
}

// Series is an append-only, order-preserving sequence of rows. Rows are
// never reordered or deduplicated; memory scales linearly with the step
// count. Treat it as read-only once the run completes.
type Series struct {
	rows []Row
}

// NewSeries preallocates capacity for the expected step count.
func NewSeries(steps int) *Series {
	if steps < 0 {
		steps = 0
	}
	return &Series{rows: make([]Row, 0, steps)}
}

// Append adds one sample in step order.
func (s *Series) Append(r Row) {
	s.rows = append(s.rows, r)
}

// Len returns the number of accumulated rows.
func (s *Series) Len() int { return len(s.rows) }

// Rows returns the accumulated rows in step order. The slice is the
// series' backing storage; callers must not mutate it.
func (s *Series) Rows() []Row { return s.rows }

// Times returns the elapsed-time column.
func (s *Series) Times() []float64 {
	out := make([]float64, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Time
	}
	return out
}

// Temperatures returns the bulk-temperature column.
func (s *Series) Temperatures() []float64 {
	out := make([]float64, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Temperature
	}
	return out
}

// Column returns mole-fraction column j across all rows.
func (s *Series) Column(j int) []float64 {
	out := make([]float64, len(s.rows))
	for i, r := range s.rows {
		if j < len(r.X) {
			out[i] = r.X[j]
		}
	}
	return out
}
