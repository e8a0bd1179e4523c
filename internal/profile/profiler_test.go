package profile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabviz/tabviz/internal/domain"
)

func numCol(name string, vals ...any) domain.Column {
	return domain.Column{Name: name, DType: domain.DTypeNumeric, Values: vals}
}

func catCol(name string, vals ...any) domain.Column {
	return domain.Column{Name: name, DType: domain.DTypeCategorical, Values: vals}
}

func TestBuildEmptyDataset(t *testing.T) {
	_, err := Build(domain.NewDataset(nil))
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)

	_, err = Build(domain.NewDataset([]domain.Column{numCol("x")}))
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestBuildNumericSummary(t *testing.T) {
	ds := domain.NewDataset([]domain.Column{
		numCol("x", 1.0, 2.0, 3.0, 4.0, nil),
	})

	p, err := Build(ds)
	require.NoError(t, err)

	s, ok := p.Numeric["x"]
	require.True(t, ok)

	// Count excludes nulls; std uses sample (ddof=1) semantics;
	// quartiles interpolate linearly.
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 1.2909944487358056, s.Std, 1e-9)
	assert.InDelta(t, 1.0, s.Min, 1e-9)
	assert.InDelta(t, 1.75, s.P25, 1e-9)
	assert.InDelta(t, 2.5, s.P50, 1e-9)
	assert.InDelta(t, 3.25, s.P75, 1e-9)
	assert.InDelta(t, 4.0, s.Max, 1e-9)

	info := p.Columns["x"]
	assert.Equal(t, 1, info.NullCount)
	assert.InDelta(t, 20.0, info.NullPercentage, 1e-9)
}

func TestBuildDeterministic(t *testing.T) {
	ds := domain.NewDataset([]domain.Column{
		numCol("n", 3.0, 1.0, nil, 2.0),
		catCol("c", "a", "b", "a", nil),
	})

	p1, err := Build(ds)
	require.NoError(t, err)
	p2, err := Build(ds)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
}

func TestBuildCategoricalTopValues(t *testing.T) {
	vals := make([]any, 0, 30)
	for i := 0; i < 15; i++ {
		// value-i appears i+1 times
		for j := 0; j <= i; j++ {
			vals = append(vals, fmt.Sprintf("value-%d", i))
		}
	}
	ds := domain.NewDataset([]domain.Column{catCol("c", vals...)})

	p, err := Build(ds)
	require.NoError(t, err)

	s := p.Categorical["c"]
	assert.Equal(t, 15, s.UniqueValues)
	require.Len(t, s.TopValues, TopValues)
	// Ordered by count descending.
	assert.Equal(t, "value-14", s.TopValues[0].Value)
	assert.Equal(t, 15, s.TopValues[0].Count)
	for i := 1; i < len(s.TopValues); i++ {
		assert.GreaterOrEqual(t, s.TopValues[i-1].Count, s.TopValues[i].Count)
	}
}

func TestBuildSampleBounded(t *testing.T) {
	vals := make([]any, 100)
	for i := range vals {
		vals[i] = float64(i)
	}
	ds := domain.NewDataset([]domain.Column{numCol("x", vals...)})

	p, err := Build(ds)
	require.NoError(t, err)

	require.Len(t, p.Sample, SampleRows)
	assert.Equal(t, 0.0, p.Sample[0]["x"])
}

func TestBuildSkipsBooleanAndDatetimeSummaries(t *testing.T) {
	ds := domain.NewDataset([]domain.Column{
		{Name: "b", DType: domain.DTypeBoolean, Values: []any{true, false}},
		numCol("n", 1.0, 2.0),
	})

	p, err := Build(ds)
	require.NoError(t, err)

	_, inNumeric := p.Numeric["b"]
	_, inCategorical := p.Categorical["b"]
	assert.False(t, inNumeric)
	assert.False(t, inCategorical)
	assert.Equal(t, domain.DTypeBoolean, p.Columns["b"].DType)
}

func TestQuantileSingleValue(t *testing.T) {
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.25))
	assert.Equal(t, 0.0, SampleStd([]float64{7}))
}
