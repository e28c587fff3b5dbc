// Package report prints pipeline results for people reading a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"streamprep/pkg/stats"
)

// Formatter renders floats with a fixed number of decimals. A negative
// Precision prints the shortest exact representation.
type Formatter struct {
	Precision int
}

var (
	// Metrics prints large metric counts without decimals.
	Metrics = Formatter{Precision: 0}
	// Coefficients prints correlation coefficients.
	Coefficients = Formatter{Precision: 3}
	// Exact prints values as they are stored.
	Exact = Formatter{Precision: -1}
)

// Float formats a single value.
func (f Formatter) Float(v float64) string {
	return strconv.FormatFloat(v, 'f', f.Precision, 64)
}

// Floats formats values as a bracketed, space separated list.
func (f Formatter) Floats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = f.Float(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// WriteCorrelations prints the high-correlation report as a table.
func WriteCorrelations(w io.Writer, threshold float64, pairs []stats.CorrelatedPair) error {
	if _, err := fmt.Fprintln(w, "Features with correlation greater than", Exact.Float(threshold)); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"feature1", "feature2", "corr"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, p := range pairs {
		table.Append([]string{p.Feature1, p.Feature2, Coefficients.Float(p.Corr)})
	}
	table.Render()
	return nil
}

// Summary describes the arrays handed to downstream modelling.
type Summary struct {
	Rows, Cols int
	Targets    int
	Features   []string
	Sample     []float64
}

// WriteSummary prints shapes, feature names and a sample of the target.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Preprocessing completed successfully.\nX shape: (%d, %d)\ny shape: (%d,)\nFeatures: [%s]\nSample of y: %s\n",
		s.Rows, s.Cols, s.Targets, strings.Join(s.Features, " "), Exact.Floats(s.Sample))
	return err
}
