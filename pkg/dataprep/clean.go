package dataprep

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"streamprep/pkg/data"
)

// ParseNumber strips thousands separators and parses s as a float.
// Anything that does not parse is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// CleanNumericColumns converts the named columns to Numeric in place.
// Text cells that fail to parse become missing; Numeric columns are left as is.
func CleanNumericColumns(t *data.Table, columns []string) error {
	for _, name := range columns {
		c, err := t.Col(name)
		if err != nil {
			return err
		}
		n, err := ToNumeric(c)
		if err != nil {
			return err
		}
		if err := t.Set(n); err != nil {
			return err
		}
	}
	return nil
}

// ToNumeric returns c as a Numeric column.
func ToNumeric(c *data.Column) (*data.Column, error) {
	switch c.Kind {
	case data.Numeric:
		return c, nil
	case data.String:
		nums := make([]float64, c.Len())
		for i, v := range c.Text {
			if c.IsMissing(i) {
				nums[i] = math.NaN()
				continue
			}
			nums[i] = ParseNumber(v)
		}
		return data.NewNumericColumn(c.Name, nums), nil
	default:
		return nil, &data.ColumnError{Column: c.Name, Err: fmt.Errorf("%w: cannot convert %s to numeric", data.ErrKind, c.Kind)}
	}
}

// MissingRate is the share of missing cells in one column, in percent.
type MissingRate struct {
	Column  string
	Percent float64
}

// MissingReport lists columns by missing percentage, highest first.
type MissingReport []MissingRate

// MissingPercent computes the missing percentage of every column of t.
// Columns with equal rates keep their table order.
func MissingPercent(t *data.Table) MissingReport {
	report := make(MissingReport, 0, t.Width())
	for _, c := range t.Columns() {
		pct := 0.0
		if t.Len() > 0 {
			pct = float64(c.Missing()) / float64(t.Len()) * 100
		}
		report = append(report, MissingRate{Column: c.Name, Percent: pct})
	}
	sort.SliceStable(report, func(i, j int) bool { return report[i].Percent > report[j].Percent })
	return report
}

// Above returns the entries whose percentage is strictly greater than threshold.
func (r MissingReport) Above(threshold float64) MissingReport {
	var out MissingReport
	for _, m := range r {
		if m.Percent > threshold {
			out = append(out, m)
		}
	}
	return out
}

// Columns returns the column names in report order.
func (r MissingReport) Columns() []string {
	names := make([]string, len(r))
	for i, m := range r {
		names[i] = m.Column
	}
	return names
}

// DropMissing removes the columns of report above threshold and returns them.
func DropMissing(t *data.Table, report MissingReport, threshold float64, logger *slog.Logger) (MissingReport, error) {
	logger = orDefault(logger)
	drop := report.Above(threshold)
	for _, m := range drop {
		logger.Info(fmt.Sprintf("Dropping column '%s' with %.2f%% missing values.", m.Column, m.Percent),
			slog.String("column", m.Column),
			slog.Float64("missing_pct", m.Percent))
	}
	if err := t.Drop(drop.Columns()...); err != nil {
		return nil, err
	}
	return drop, nil
}

// DropDuplicates removes rows identical to an earlier row across every column
// and returns how many were removed. Missing cells compare equal.
func DropDuplicates(t *data.Table, logger *slog.Logger) int {
	logger = orDefault(logger)
	seen := make(map[string]struct{}, t.Len())
	keep := make([]bool, t.Len())
	dups := 0
	for i := range t.Len() {
		key := t.RowKey(i)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}
	if dups == 0 {
		logger.Info("There are no duplicate records")
		return 0
	}
	logger.Info(fmt.Sprintf("There are %d duplicate records", dups), slog.Int("duplicates", dups))
	t.Filter(keep)
	logger.Info("Duplicate records were removed", slog.Int("rows", t.Len()))
	return dups
}

// MissingPlotter renders a missingness report and returns where it was written.
type MissingPlotter interface {
	PlotMissing(report MissingReport) (string, error)
}

// ReduceMissing plots the missing percentages of t, drops every column above
// threshold and then removes duplicate rows. It returns the dropped columns.
func ReduceMissing(t *data.Table, threshold float64, plotter MissingPlotter, logger *slog.Logger) (MissingReport, error) {
	report := MissingPercent(t)
	if plotter != nil {
		if _, err := plotter.PlotMissing(report); err != nil {
			return nil, err
		}
	}
	dropped, err := DropMissing(t, report, threshold, logger)
	if err != nil {
		return nil, err
	}
	DropDuplicates(t, logger)
	return dropped, nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
