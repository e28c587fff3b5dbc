package data

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind is the logical type of a column.
type Kind int

const (
	String Kind = iota
	Numeric
	Date
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	default:
		return "string"
	}
}

// Column holds the values of a single named column. Only the slice matching
// Kind is populated. Missing numerics are NaN, missing dates are the zero time.
type Column struct {
	Name  string
	Kind  Kind
	Text  []string
	Nums  []float64
	Dates []time.Time
	null  []bool // missing mask for String columns
}

// NewStringColumn builds a String column; null marks missing cells and may be nil.
func NewStringColumn(name string, values []string, null []bool) *Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &Column{Name: name, Kind: String, Text: values, null: null}
}

// NewNumericColumn builds a Numeric column.
func NewNumericColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: Numeric, Nums: values}
}

// NewDateColumn builds a Date column.
func NewDateColumn(name string, values []time.Time) *Column {
	return &Column{Name: name, Kind: Date, Dates: values}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case Numeric:
		return len(c.Nums)
	case Date:
		return len(c.Dates)
	default:
		return len(c.Text)
	}
}

// IsMissing reports whether cell i holds no value.
func (c *Column) IsMissing(i int) bool {
	switch c.Kind {
	case Numeric:
		return math.IsNaN(c.Nums[i])
	case Date:
		return c.Dates[i].IsZero()
	default:
		return c.null[i]
	}
}

// Missing counts the missing cells.
func (c *Column) Missing() int {
	n := 0
	for i := range c.Len() {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// missingKey is the key of every missing cell. Present cells are quoted, so
// no present value can produce it.
const missingKey = "-"

// Key returns a comparable string form of cell i, used for row hashing.
// Present values are quoted, which makes a concatenation of keys
// unambiguous. Every missing cell maps to the same key regardless of kind.
func (c *Column) Key(i int) string {
	if c.IsMissing(i) {
		return missingKey
	}
	switch c.Kind {
	case Numeric:
		return strconv.Quote(strconv.FormatFloat(c.Nums[i], 'g', -1, 64))
	case Date:
		return strconv.Quote(c.Dates[i].Format(time.RFC3339Nano))
	default:
		return strconv.Quote(c.Text[i])
	}
}

// filter keeps the cells where keep is true.
func (c *Column) filter(keep []bool) {
	switch c.Kind {
	case Numeric:
		c.Nums = filterSlice(c.Nums, keep)
	case Date:
		c.Dates = filterSlice(c.Dates, keep)
	default:
		c.Text = filterSlice(c.Text, keep)
		c.null = filterSlice(c.null, keep)
	}
}

func (c *Column) clone() *Column {
	n := &Column{Name: c.Name, Kind: c.Kind}
	n.Text = append([]string(nil), c.Text...)
	n.Nums = append([]float64(nil), c.Nums...)
	n.Dates = append([]time.Time(nil), c.Dates...)
	n.null = append([]bool(nil), c.null...)
	return n
}

func filterSlice[T any](s []T, keep []bool) []T {
	out := s[:0]
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

// Table is an ordered set of equally sized columns. Index holds the original
// row label of every row so that filtered views can be realigned.
type Table struct {
	Index   []int
	columns []*Column
	lookup  map[string]int
}

// NewTable creates a table from columns of equal length with labels 0..n-1.
func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{lookup: make(map[string]int)}
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}
	t.Index = make([]int, n)
	for i := range n {
		t.Index[i] = i
	}
	for _, c := range cols {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Index) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.columns) }

// Columns returns the columns in order.
func (t *Table) Columns() []*Column { return t.columns }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.lookup[name]
	return ok
}

// Col looks up a column by name.
func (t *Table) Col(name string) (*Column, error) {
	i, ok := t.lookup[name]
	if !ok {
		return nil, &ColumnError{Column: name, Err: ErrColumnNotFound}
	}
	return t.columns[i], nil
}

// Add appends a column. The name must be new and the length must match.
func (t *Table) Add(c *Column) error {
	if t.Has(c.Name) {
		return &ColumnError{Column: c.Name, Err: ErrDuplicateColumn}
	}
	if len(t.columns) == 0 && t.Len() == 0 {
		t.Index = make([]int, c.Len())
		for i := range t.Index {
			t.Index[i] = i
		}
	}
	if c.Len() != t.Len() {
		return &ColumnError{Column: c.Name, Err: fmt.Errorf("%w: has %d rows, table has %d", ErrLength, c.Len(), t.Len())}
	}
	t.lookup[c.Name] = len(t.columns)
	t.columns = append(t.columns, c)
	return nil
}

// Set replaces the column with the same name, or appends it.
func (t *Table) Set(c *Column) error {
	i, ok := t.lookup[c.Name]
	if !ok {
		return t.Add(c)
	}
	if c.Len() != t.Len() {
		return &ColumnError{Column: c.Name, Err: fmt.Errorf("%w: has %d rows, table has %d", ErrLength, c.Len(), t.Len())}
	}
	t.columns[i] = c
	return nil
}

// Drop removes the named columns. Unknown names are a schema error and leave
// the table untouched.
func (t *Table) Drop(names ...string) error {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return &ColumnError{Column: n, Err: ErrColumnNotFound}
		}
		drop[n] = true
	}
	kept := t.columns[:0]
	for _, c := range t.columns {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	t.columns = kept
	t.reindex()
	return nil
}

// Filter keeps the rows where keep is true, preserving their labels.
func (t *Table) Filter(keep []bool) {
	for _, c := range t.columns {
		c.filter(keep)
	}
	t.Index = filterSlice(t.Index, keep)
}

// NumericColumns returns the Numeric columns in table order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.columns {
		if c.Kind == Numeric {
			out = append(out, c)
		}
	}
	return out
}

// RowKey concatenates the keys of every cell in row i.
func (t *Table) RowKey(i int) string {
	key := make([]byte, 0, 16*len(t.columns))
	for _, c := range t.columns {
		key = append(key, c.Key(i)...)
	}
	return string(key)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	n := &Table{Index: append([]int(nil), t.Index...), lookup: make(map[string]int, len(t.columns))}
	for _, c := range t.columns {
		n.lookup[c.Name] = len(n.columns)
		n.columns = append(n.columns, c.clone())
	}
	return n
}

func (t *Table) reindex() {
	t.lookup = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.lookup[c.Name] = i
	}
}
