// Package aggregate maps a (chart kind, column selection) request
// against a cached dataset into one of the fixed chart payload
// shapes. Payloads are computed fresh on every call; nothing here is
// cached.
package aggregate

import (
	"github.com/tabviz/tabviz/internal/domain"
)

// HistogramBins is the fixed number of equal-width histogram bins.
const HistogramBins = 10

// Aggregate validates a chart-data request and computes its payload.
// Validation order is fixed: chart kind, then required parameter
// roles, then column existence, then column types.
func Aggregate(ds *domain.Dataset, kind domain.ChartKind, params map[string]string) (domain.ChartData, error) {
	if !kind.Valid() {
		return nil, &domain.UnknownChartKindError{Kind: kind}
	}
	for _, role := range kind.RequiredParams() {
		if params[role] == "" {
			return nil, &domain.MissingParameterError{Kind: kind, Parameter: role}
		}
	}
	for _, role := range kind.RequiredParams() {
		if !ds.HasColumn(params[role]) {
			return nil, &domain.ColumnNotFoundError{Column: params[role]}
		}
	}

	switch kind {
	case domain.ChartBar, domain.ChartLine, domain.ChartScatter, domain.ChartArea:
		return xySeries(ds, params["x_axis"], params["y_axis"])
	case domain.ChartPie:
		return pieSeries(ds, params["labels"], params["values"])
	case domain.ChartHistogram:
		return histogram(ds, params["column"])
	case domain.ChartBox:
		return boxPlot(ds, params["x_axis"], params["y_axis"])
	case domain.ChartHeatmap:
		return heatmap(ds, params["rows"], params["columns"], params["values"])
	}
	return nil, &domain.UnknownChartKindError{Kind: kind}
}

// groupSum folds rows into per-key totals keyed by the label column.
// Duplicate keys aggregate by sum when the value column is numeric and
// by group size otherwise; rows with a null key are skipped. Keys keep
// first-seen order.
func groupSum(keyCol, valCol *domain.Column, rows int) ([]string, []float64) {
	var labels []string
	totals := make(map[string]float64)
	numeric := valCol.DType == domain.DTypeNumeric

	for i := 0; i < rows; i++ {
		if keyCol.Values[i] == nil {
			continue
		}
		key := keyCol.Label(i)
		if _, seen := totals[key]; !seen {
			labels = append(labels, key)
			totals[key] = 0
		}
		if numeric {
			if v, ok := valCol.Float(i); ok {
				totals[key] += v
			}
		} else {
			// Group size: every row under the key counts, null y
			// included.
			totals[key]++
		}
	}

	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = totals[label]
	}
	return labels, values
}

func xySeries(ds *domain.Dataset, xAxis, yAxis string) (domain.ChartData, error) {
	labels, values := groupSum(ds.Column(xAxis), ds.Column(yAxis), ds.Rows())
	return domain.XYSeries{
		Labels: labels,
		Values: values,
		XAxis:  xAxis,
		YAxis:  yAxis,
	}, nil
}

func pieSeries(ds *domain.Dataset, labelsCol, valuesCol string) (domain.ChartData, error) {
	labels, values := groupSum(ds.Column(labelsCol), ds.Column(valuesCol), ds.Rows())
	return domain.PieSeries{Labels: labels, Values: values}, nil
}

func histogram(ds *domain.Dataset, column string) (domain.ChartData, error) {
	col := ds.Column(column)
	if col.DType != domain.DTypeNumeric {
		return nil, &domain.TypeMismatchError{Column: column, Want: domain.DTypeNumeric}
	}

	var xs []float64
	for i := range col.Values {
		if v, ok := col.Float(i); ok {
			xs = append(xs, v)
		}
	}

	// All-null column: an empty histogram, not an error.
	if len(xs) == 0 {
		return domain.Histogram{Bins: []float64{}, Counts: []int{}, Column: column}, nil
	}

	min, max := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return domain.Histogram{Bins: []float64{min}, Counts: []int{len(xs)}, Column: column}, nil
	}

	width := (max - min) / HistogramBins
	bins := make([]float64, HistogramBins)
	counts := make([]int, HistogramBins)
	for i := range bins {
		bins[i] = min + float64(i)*width
	}
	for _, v := range xs {
		idx := int((v - min) / width)
		if idx >= HistogramBins {
			idx = HistogramBins - 1
		}
		counts[idx]++
	}

	return domain.Histogram{Bins: bins, Counts: counts, Column: column}, nil
}

func boxPlot(ds *domain.Dataset, xAxis, yAxis string) (domain.ChartData, error) {
	yCol := ds.Column(yAxis)
	if yCol.DType != domain.DTypeNumeric {
		return nil, &domain.TypeMismatchError{Column: yAxis, Want: domain.DTypeNumeric}
	}
	xCol := ds.Column(xAxis)
	if xCol.DType != domain.DTypeCategorical {
		return nil, &domain.TypeMismatchError{Column: xAxis, Want: domain.DTypeCategorical}
	}

	var order []string
	groups := make(map[string][]float64)
	for i := 0; i < ds.Rows(); i++ {
		if xCol.Values[i] == nil {
			continue
		}
		key := xCol.Label(i)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
			groups[key] = nil
		}
		if v, ok := yCol.Float(i); ok {
			groups[key] = append(groups[key], v)
		}
	}

	var data []domain.BoxStats
	for _, key := range order {
		if stats, ok := boxStats(key, groups[key]); ok {
			data = append(data, stats)
		}
	}

	return domain.BoxPlot{Data: data, XAxis: xAxis, YAxis: yAxis}, nil
}

func heatmap(ds *domain.Dataset, rowsCol, colsCol, valuesCol string) (domain.ChartData, error) {
	vCol := ds.Column(valuesCol)
	if vCol.DType != domain.DTypeNumeric {
		return nil, &domain.TypeMismatchError{Column: valuesCol, Want: domain.DTypeNumeric}
	}
	rCol := ds.Column(rowsCol)
	cCol := ds.Column(colsCol)

	var rowLabels, colLabels []string
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	type cell struct{ r, c int }
	cells := make(map[cell]float64)

	for i := 0; i < ds.Rows(); i++ {
		if rCol.Values[i] == nil || cCol.Values[i] == nil {
			continue
		}
		rk, ck := rCol.Label(i), cCol.Label(i)
		ri, ok := rowIdx[rk]
		if !ok {
			ri = len(rowLabels)
			rowIdx[rk] = ri
			rowLabels = append(rowLabels, rk)
		}
		ci, ok := colIdx[ck]
		if !ok {
			ci = len(colLabels)
			colIdx[ck] = ci
			colLabels = append(colLabels, ck)
		}
		if v, ok := vCol.Float(i); ok {
			cells[cell{ri, ci}] += v
		} else {
			// Keep the cell present so the matrix stays rectangular
			// even when every matching value is null.
			cells[cell{ri, ci}] += 0
		}
	}

	// Missing row×column pairs are filled with 0, never null.
	matrix := make([][]float64, len(rowLabels))
	for r := range matrix {
		matrix[r] = make([]float64, len(colLabels))
	}
	for pos, sum := range cells {
		matrix[pos.r][pos.c] = sum
	}

	return domain.Heatmap{Rows: rowLabels, Columns: colLabels, Values: matrix}, nil
}
