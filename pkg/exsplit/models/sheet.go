package models

// Dataset is the tabular content of one sheet: a header row and the data
// rows beneath it. Every row has exactly len(Columns) cells.
type Dataset struct {
	// Columns holds the header names in sheet order.
	Columns []string `json:"columns"`
	// Rows holds the data rows, header excluded.
	Rows [][]Scalar `json:"-"`
}

// NewDataset builds a Dataset, padding or truncating rows to the header width.
func NewDataset(columns []string, rows [][]Scalar) *Dataset {
	width := len(columns)
	normalized := make([][]Scalar, 0, len(rows))
	for _, row := range rows {
		if len(row) == width {
			normalized = append(normalized, row)
			continue
		}
		fixed := make([]Scalar, width)
		copy(fixed, row)
		normalized = append(normalized, fixed)
	}
	return &Dataset{Columns: columns, Rows: normalized}
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Column returns the values of one column in row order.
func (d *Dataset) Column(name string) ([]Scalar, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]Scalar, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Select returns the rows whose mask entry is true, preserving order.
// Rows are shared with the receiver, not copied.
func (d *Dataset) Select(mask []bool) *Dataset {
	var rows [][]Scalar
	for i, keep := range mask {
		if keep && i < len(d.Rows) {
			rows = append(rows, d.Rows[i])
		}
	}
	return &Dataset{Columns: d.Columns, Rows: rows}
}
