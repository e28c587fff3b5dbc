package data

import (
	"errors"
	"fmt"
)

// Schema describes the columns a stage depends on and their declared kinds.
type Schema struct {
	Names []string
	Kinds []Kind
}

// NewSchema builds a schema where every listed column has the same kind.
func NewSchema(kind Kind, names ...string) Schema {
	kinds := make([]Kind, len(names))
	for i := range kinds {
		kinds[i] = kind
	}
	return Schema{Names: names, Kinds: kinds}
}

// Merge appends other to s, skipping names already declared.
func (s Schema) Merge(other Schema) Schema {
	seen := make(map[string]bool, len(s.Names))
	out := Schema{Names: append([]string(nil), s.Names...), Kinds: append([]Kind(nil), s.Kinds...)}
	for _, n := range s.Names {
		seen[n] = true
	}
	for i, n := range other.Names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out.Names = append(out.Names, n)
		out.Kinds = append(out.Kinds, other.Kinds[i])
	}
	return out
}

// Validate checks that every declared column exists. Numeric columns may be
// stored as text until they are normalized, so only Date columns are checked
// for kind. All problems are reported together.
func (s Schema) Validate(t *Table) error {
	var errs []error
	for i, name := range s.Names {
		c, err := t.Col(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if s.Kinds[i] == Date && c.Kind == Numeric {
			errs = append(errs, &ColumnError{Column: name, Err: fmt.Errorf("%w: want %s or string, got %s", ErrKind, Date, c.Kind)})
		}
	}
	return errors.Join(errs...)
}
