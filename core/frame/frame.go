package frame

import (
	"fmt"
	"strings"
)

// Row is a read-only view of a single row, keyed by column name. Mutating a
// Row has no effect on the frame it was produced from.
type Row map[string]any

// Frame is an ordered collection of equally sized columns. Frames are
// immutable: all methods return new frames and leave the receiver untouched,
// so concurrent readers need no locking.
type Frame struct {
	columns []*Series
}

// New builds a frame from the given columns. It fails if column names are
// duplicated or column lengths differ. The input series are copied.
func New(columns ...*Series) (*Frame, error) {
	seen := make(map[string]struct{}, len(columns))
	cols := make([]*Series, len(columns))
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, dup := seen[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name())
		}
		seen[c.Name()] = struct{}{}
		if i > 0 && c.Len() != columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), columns[0].Len())
		}
		cols[i] = c.Copy()
	}
	return &Frame{columns: cols}, nil
}

// Nrow returns the number of rows.
func (f *Frame) Nrow() int {
	if len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// Ncol returns the number of columns.
func (f *Frame) Ncol() int { return len(f.columns) }

// Dims returns the number of rows and columns.
func (f *Frame) Dims() (int, int) { return f.Nrow(), f.Ncol() }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name()
	}
	return names
}

// Types returns the column types in column order.
func (f *Frame) Types() []Type {
	types := make([]Type, len(f.columns))
	for i, c := range f.columns {
		types[i] = c.Type()
	}
	return types
}

// HasCol reports whether a column with the given name exists.
func (f *Frame) HasCol(name string) bool {
	_, err := f.Col(name)
	return err == nil
}

// Col returns a copy of the named column, or a MissingColumnError.
func (f *Frame) Col(name string) (*Series, error) {
	for _, c := range f.columns {
		if c.Name() == name {
			return c.Copy(), nil
		}
	}
	return nil, &MissingColumnError{Column: name}
}

// Row returns a map view of row i. The map is freshly allocated per call.
func (f *Frame) Row(i int) Row {
	row := make(Row, len(f.columns))
	for _, c := range f.columns {
		row[c.Name()] = c.Elem(i)
	}
	return row
}

// Select returns a new frame containing only the named columns, in the
// requested order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Series, 0, len(names))
	for _, name := range names {
		c, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return &Frame{columns: cols}, nil
}

// Drop returns a new frame without the named columns. Unknown names fail
// with a MissingColumnError.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	for _, name := range names {
		if !f.HasCol(name) {
			return nil, &MissingColumnError{Column: name}
		}
	}
	dropped := make(map[string]struct{}, len(names))
	for _, name := range names {
		dropped[name] = struct{}{}
	}
	var cols []*Series
	for _, c := range f.columns {
		if _, skip := dropped[c.Name()]; !skip {
			cols = append(cols, c.Copy())
		}
	}
	return &Frame{columns: cols}, nil
}

// Slice returns the half-open row range [from, to) as a new frame.
func (f *Frame) Slice(from, to int) (*Frame, error) {
	if from < 0 || to > f.Nrow() || from > to {
		return nil, fmt.Errorf("slice [%d, %d) out of range for %d rows", from, to, f.Nrow())
	}
	indices := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		indices = append(indices, i)
	}
	return f.subsetRows(indices), nil
}

// RowsAt returns a new frame containing the rows at the given indices, in
// the given order.
func (f *Frame) RowsAt(indices ...int) (*Frame, error) {
	for _, i := range indices {
		if i < 0 || i >= f.Nrow() {
			return nil, fmt.Errorf("row index %d out of range for %d rows", i, f.Nrow())
		}
	}
	return f.subsetRows(indices), nil
}

// FilterRows returns a new frame with the rows for which mask is true,
// preserving order. The mask must have one entry per row.
func (f *Frame) FilterRows(mask []bool) (*Frame, error) {
	if len(mask) != f.Nrow() {
		return nil, fmt.Errorf("mask has %d entries, want %d", len(mask), f.Nrow())
	}
	var indices []int
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return f.subsetRows(indices), nil
}

func (f *Frame) subsetRows(indices []int) *Frame {
	cols := make([]*Series, len(f.columns))
	for i, c := range f.columns {
		cols[i] = c.subset(indices)
	}
	return &Frame{columns: cols}
}

// Mutate returns a new frame with the given column appended, or replacing an
// existing column of the same name in place (keeping its position). The
// column must match the frame's row count.
func (f *Frame) Mutate(col *Series) (*Frame, error) {
	if f.Ncol() > 0 && col.Len() != f.Nrow() {
		return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name(), col.Len(), f.Nrow())
	}
	cols := make([]*Series, 0, len(f.columns)+1)
	replaced := false
	for _, c := range f.columns {
		if c.Name() == col.Name() {
			cols = append(cols, col.Copy())
			replaced = true
			continue
		}
		cols = append(cols, c.Copy())
	}
	if !replaced {
		cols = append(cols, col.Copy())
	}
	return &Frame{columns: cols}, nil
}

// Map derives a new column named dst by applying fn to every row and appends
// it via Mutate. The result type is inferred from the computed values.
func (f *Frame) Map(dst string, fn func(Row) (any, error)) (*Frame, error) {
	vals := make([]any, f.Nrow())
	for i := 0; i < f.Nrow(); i++ {
		v, err := fn(f.Row(i))
		if err != nil {
			return nil, fmt.Errorf("deriving column %q at row %d: %w", dst, i, err)
		}
		vals[i] = v
	}
	col, err := NewSeries(vals, inferValueType(vals), dst)
	if err != nil {
		return nil, err
	}
	return f.Mutate(col)
}

// inferValueType picks the narrowest column type that holds every value.
func inferValueType(vals []any) Type {
	t := Bool
	for _, v := range vals {
		switch v.(type) {
		case nil:
		case bool:
			if t != Bool {
				return String
			}
		case int:
			if t == Bool {
				t = Int
			} else if t != Int && t != Float {
				return String
			}
		case float64:
			if t == Bool || t == Int {
				t = Float
			} else if t != Float {
				return String
			}
		default:
			return String
		}
	}
	return t
}

// Records renders the frame as [][]string with a leading header row.
func (f *Frame) Records() [][]string {
	out := make([][]string, 0, f.Nrow()+1)
	out = append(out, f.Names())
	cols := make([][]string, len(f.columns))
	for i, c := range f.columns {
		cols[i] = c.Records()
	}
	for r := 0; r < f.Nrow(); r++ {
		row := make([]string, len(f.columns))
		for i := range f.columns {
			row[i] = cols[i][r]
		}
		out = append(out, row)
	}
	return out
}

// String renders a compact textual view of the frame: dimensions, header
// with types, and up to the first ten rows.
func (f *Frame) String() string {
	var b strings.Builder
	nrow, ncol := f.Dims()
	fmt.Fprintf(&b, "[%dx%d]\n", nrow, ncol)
	for i, c := range f.columns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s<%s>", c.Name(), c.Type())
	}
	b.WriteByte('\n')
	limit := nrow
	if limit > 10 {
		limit = 10
	}
	records := f.Records()
	for r := 1; r <= limit; r++ {
		b.WriteString(strings.Join(records[r], "  "))
		b.WriteByte('\n')
	}
	if nrow > limit {
		fmt.Fprintf(&b, "... %d more rows\n", nrow-limit)
	}
	return b.String()
}
