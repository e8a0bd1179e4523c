package domain

import (
	"strconv"
	"time"
)

// DType classifies the values of a column.
type DType string

const (
	DTypeNumeric     DType = "numeric"
	DTypeCategorical DType = "categorical"
	DTypeDatetime    DType = "datetime"
	DTypeBoolean     DType = "boolean"
)

// Column is a named, homogeneously typed sequence of values.
// Values holds one entry per row; nil marks a null. Numeric values are
// float64, categorical values string, datetime values time.Time and
// boolean values bool.
type Column struct {
	Name   string
	DType  DType
	Values []any
}

// Dataset is an ordered collection of columns sharing one row count.
// A Dataset is immutable after ingestion; all cleanup happens while
// parsing, before the dataset is handed to the rest of the system.
type Dataset struct {
	Columns []Column
	rows    int
}

// NewDataset builds a dataset from columns. All columns must already
// share the same length.
func NewDataset(columns []Column) *Dataset {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}
	return &Dataset{Columns: columns, rows: rows}
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int {
	return d.rows
}

// Column returns the column with the given name, or nil if absent.
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.Column(name) != nil
}

// ColumnNames returns the column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Float returns the value at row i as a float64. The second result is
// false for nulls and non-numeric values.
func (c *Column) Float(i int) (float64, bool) {
	v, ok := c.Values[i].(float64)
	return v, ok
}

// Label renders the value at row i as a display label. Nulls become
// the empty string.
func (c *Column) Label(i int) string {
	return FormatValue(c.Values[i])
}

// FormatValue renders a cell value for use as a group key or label.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		return formatFloat(x)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
