package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"streamprep/pkg/data"
)

// CorrelationMatrix holds pairwise Pearson coefficients between named columns.
// Values is nil when there are no columns.
type CorrelationMatrix struct {
	Names  []string
	Values *mat.SymDense
}

// Correlate computes the correlation matrix of every Numeric column of t.
// Each pair uses only the rows where both columns are present.
func Correlate(t *data.Table) CorrelationMatrix {
	cols := t.NumericColumns()
	m := CorrelationMatrix{Names: make([]string, len(cols))}
	for i, c := range cols {
		m.Names[i] = c.Name
	}
	if len(cols) == 0 {
		return m
	}
	m.Values = mat.NewSymDense(len(cols), nil)
	for i := range cols {
		for j := i; j < len(cols); j++ {
			m.Values.SetSym(i, j, Correlation(cols[i].Nums, cols[j].Nums))
		}
	}
	return m
}

// Size returns the number of columns in the matrix.
func (m CorrelationMatrix) Size() int { return len(m.Names) }

// At returns the coefficient between columns i and j.
func (m CorrelationMatrix) At(i, j int) float64 { return m.Values.At(i, j) }

// Round returns a copy with every coefficient rounded to decimals.
func (m CorrelationMatrix) Round(decimals int) CorrelationMatrix {
	out := CorrelationMatrix{Names: append([]string(nil), m.Names...)}
	if m.Values == nil {
		return out
	}
	n := m.Size()
	out.Values = mat.NewSymDense(n, nil)
	for i := range n {
		for j := i; j < n; j++ {
			out.Values.SetSym(i, j, Round(m.At(i, j), decimals))
		}
	}
	return out
}

// CorrelatedPair is one row of the high-correlation report.
type CorrelatedPair struct {
	Feature1 string
	Feature2 string
	Corr     float64
}

// CollapseMode selects how HighlyCorrelated thins out repeated rows.
type CollapseMode int

const (
	// CollapseByValue keeps the first pair for every distinct rounded
	// coefficient. Mirrored pairs collapse, and so do unrelated pairs that
	// happen to round to the same value.
	CollapseByValue CollapseMode = iota
	// CollapseByPair merges only (A,B) with (B,A).
	CollapseByPair
)

// HighlyCorrelated lists column pairs whose coefficient, rounded to three
// decimals, is above threshold and below 1, sorted by coefficient descending.
func HighlyCorrelated(m CorrelationMatrix, threshold float64, mode CollapseMode) []CorrelatedPair {
	var pairs []CorrelatedPair
	for i := range m.Size() {
		for j := range m.Size() {
			if m.Names[i] == m.Names[j] {
				continue
			}
			r := Round(m.At(i, j), 3)
			if math.IsNaN(r) || r <= threshold || r >= 1 {
				continue
			}
			pairs = append(pairs, CorrelatedPair{Feature1: m.Names[i], Feature2: m.Names[j], Corr: r})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].Corr > pairs[b].Corr })

	out := pairs[:0]
	seenValue := make(map[float64]bool)
	seenPair := make(map[[2]string]bool)
	for _, p := range pairs {
		switch mode {
		case CollapseByPair:
			key := [2]string{p.Feature1, p.Feature2}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seenPair[key] {
				continue
			}
			seenPair[key] = true
		default:
			if seenValue[p.Corr] {
				continue
			}
			seenValue[p.Corr] = true
		}
		out = append(out, p)
	}
	return out
}
