package domain

// ColumnInfo holds per-column schema and null statistics.
type ColumnInfo struct {
	DType          DType   `json:"dtype"`
	NullCount      int     `json:"null_count"`
	NullPercentage float64 `json:"null_percentage"`
}

// NumericSummary holds descriptive statistics for a numeric column,
// computed over non-null values only. Std uses sample (ddof=1)
// semantics; quartiles use linear interpolation.
type NumericSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"25%"`
	P50   float64 `json:"50%"`
	P75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// ValueCount is one entry in a categorical top-values list.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary holds frequency statistics for a categorical
// column. TopValues is bounded regardless of cardinality.
type CategoricalSummary struct {
	UniqueValues int          `json:"unique_values"`
	TopValues    []ValueCount `json:"top_values"`
}

// Profile is a fixed-shape statistical reduction of a dataset. Its
// size is bounded independently of the dataset size, so it can be fed
// to a language model verbatim.
type Profile struct {
	Rows        int                           `json:"rows"`
	Cols        int                           `json:"columns"`
	ColumnNames []string                      `json:"column_names"`
	Columns     map[string]ColumnInfo         `json:"columns_info"`
	Numeric     map[string]NumericSummary     `json:"statistical_summary"`
	Categorical map[string]CategoricalSummary `json:"categorical_summary"`
	Sample      []map[string]any              `json:"sample_data"`
}

// NumericColumns returns the names of profiled numeric columns in
// dataset order.
func (p *Profile) NumericColumns() []string {
	var names []string
	for _, name := range p.ColumnNames {
		if _, ok := p.Numeric[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// CategoricalColumns returns the names of profiled categorical columns
// in dataset order.
func (p *Profile) CategoricalColumns() []string {
	var names []string
	for _, name := range p.ColumnNames {
		if _, ok := p.Categorical[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
