package domain

// ChartKind identifies one of the supported visualization shapes.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartPie       ChartKind = "pie"
	ChartScatter   ChartKind = "scatter"
	ChartHistogram ChartKind = "histogram"
	ChartBox       ChartKind = "box"
	ChartHeatmap   ChartKind = "heatmap"
	ChartArea      ChartKind = "area"
)

// ChartKinds lists every supported chart kind.
var ChartKinds = []ChartKind{
	ChartBar, ChartLine, ChartPie, ChartScatter,
	ChartHistogram, ChartBox, ChartHeatmap, ChartArea,
}

// Valid reports whether k is a known chart kind.
func (k ChartKind) Valid() bool {
	for _, known := range ChartKinds {
		if k == known {
			return true
		}
	}
	return false
}

// RequiredParams returns the parameter roles a chart kind needs.
func (k ChartKind) RequiredParams() []string {
	switch k {
	case ChartBar, ChartLine, ChartScatter, ChartArea, ChartBox:
		return []string{"x_axis", "y_axis"}
	case ChartPie:
		return []string{"labels", "values"}
	case ChartHistogram:
		return []string{"column"}
	case ChartHeatmap:
		return []string{"rows", "columns", "values"}
	default:
		return nil
	}
}

// Suggestion is one model-proposed visualization. Parameters maps a
// role (x_axis, labels, ...) to a column name; every referenced column
// is guaranteed to exist in the originating dataset once the
// suggestion has passed validation.
type Suggestion struct {
	Title      string            `json:"title"`
	ChartKind  ChartKind         `json:"chart_type"`
	Parameters map[string]string `json:"parameters"`
	Insight    string            `json:"insight"`
}
