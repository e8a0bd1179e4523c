// Package profile reduces a dataset to a fixed-shape statistical
// summary. The summary size is bounded regardless of dataset size so
// it can be embedded in a model prompt without shipping row-level
// data.
package profile

import (
	"sort"

	"github.com/tabviz/tabviz/internal/domain"
)

const (
	// SampleRows bounds the row sample carried in a profile.
	SampleRows = 5
	// TopValues bounds the per-column categorical frequency list.
	TopValues = 10
)

// Build profiles a dataset. It is pure and deterministic; the only
// failure mode is an empty dataset.
func Build(ds *domain.Dataset) (*domain.Profile, error) {
	if ds == nil || ds.Rows() == 0 || len(ds.Columns) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	p := &domain.Profile{
		Rows:        ds.Rows(),
		Cols:        len(ds.Columns),
		ColumnNames: ds.ColumnNames(),
		Columns:     make(map[string]domain.ColumnInfo, len(ds.Columns)),
		Numeric:     make(map[string]domain.NumericSummary),
		Categorical: make(map[string]domain.CategoricalSummary),
	}

	for _, col := range ds.Columns {
		nulls := 0
		for _, v := range col.Values {
			if v == nil {
				nulls++
			}
		}
		p.Columns[col.Name] = domain.ColumnInfo{
			DType:          col.DType,
			NullCount:      nulls,
			NullPercentage: float64(nulls) / float64(ds.Rows()) * 100,
		}

		switch col.DType {
		case domain.DTypeNumeric:
			p.Numeric[col.Name] = summarizeNumeric(col)
		case domain.DTypeCategorical:
			p.Categorical[col.Name] = summarizeCategorical(col)
		}
	}

	p.Sample = sampleRows(ds, SampleRows)
	return p, nil
}

func summarizeNumeric(col domain.Column) domain.NumericSummary {
	var xs []float64
	for _, v := range col.Values {
		if f, ok := v.(float64); ok {
			xs = append(xs, f)
		}
	}
	if len(xs) == 0 {
		return domain.NumericSummary{}
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	return domain.NumericSummary{
		Count: len(xs),
		Mean:  Mean(xs),
		Std:   SampleStd(xs),
		Min:   sorted[0],
		P25:   Quantile(sorted, 0.25),
		P50:   Quantile(sorted, 0.50),
		P75:   Quantile(sorted, 0.75),
		Max:   sorted[len(sorted)-1],
	}
}

func summarizeCategorical(col domain.Column) domain.CategoricalSummary {
	counts := make(map[string]int)
	var order []string
	for _, v := range col.Values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}

	// Count descending, first-seen order breaking ties, so the top
	// list is stable across runs.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := order
	if len(top) > TopValues {
		top = top[:TopValues]
	}
	values := make([]domain.ValueCount, len(top))
	for i, s := range top {
		values[i] = domain.ValueCount{Value: s, Count: counts[s]}
	}

	return domain.CategoricalSummary{
		UniqueValues: len(counts),
		TopValues:    values,
	}
}

func sampleRows(ds *domain.Dataset, n int) []map[string]any {
	if n > ds.Rows() {
		n = ds.Rows()
	}
	sample := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(ds.Columns))
		for _, col := range ds.Columns {
			row[col.Name] = col.Values[i]
		}
		sample[i] = row
	}
	return sample
}
