package aggregate

import (
	"sort"

	"github.com/tabviz/tabviz/internal/domain"
	"github.com/tabviz/tabviz/internal/profile"
)

// boxStats computes the five-number summary, 1.5×IQR whiskers and
// explicit outliers for one category. ok is false when the category
// has no non-null values.
func boxStats(category string, xs []float64) (domain.BoxStats, bool) {
	if len(xs) == 0 {
		return domain.BoxStats{}, false
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	q1 := profile.Quantile(sorted, 0.25)
	median := profile.Quantile(sorted, 0.50)
	q3 := profile.Quantile(sorted, 0.75)
	iqr := q3 - q1

	min := sorted[0]
	max := sorted[len(sorted)-1]

	// Whiskers are clipped to the observed range.
	lower := q1 - 1.5*iqr
	if lower < min {
		lower = min
	}
	upper := q3 + 1.5*iqr
	if upper > max {
		upper = max
	}

	outliers := []float64{}
	for _, v := range xs {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}

	return domain.BoxStats{
		Category:     category,
		Q1:           q1,
		Median:       median,
		Q3:           q3,
		Min:          min,
		Max:          max,
		LowerWhisker: lower,
		UpperWhisker: upper,
		Outliers:     outliers,
	}, true
}
