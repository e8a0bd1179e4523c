package domain

// ChartData is the payload of a chart-data response. Exactly one
// concrete type exists per chart kind; the kind field on the response
// acts as the discriminant.
type ChartData interface {
	chartData()
}

// XYSeries is the payload for bar, line, scatter and area charts:
// grouped labels with a parallel values array.
type XYSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	XAxis  string    `json:"x_axis"`
	YAxis  string    `json:"y_axis"`
}

// PieSeries is the payload for pie charts.
type PieSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Histogram is the payload for histogram charts. Bins holds the left
// edge of each equal-width bin; Counts is parallel to Bins.
type Histogram struct {
	Bins   []float64 `json:"bins"`
	Counts []int     `json:"counts"`
	Column string    `json:"column"`
}

// BoxStats summarizes one category of a box plot. Whiskers sit at
// 1.5×IQR from the quartiles, clipped to the observed min/max, and
// Outliers lists every value beyond them.
type BoxStats struct {
	Category     string    `json:"category"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

// BoxPlot is the payload for box charts.
type BoxPlot struct {
	Data  []BoxStats `json:"data"`
	XAxis string     `json:"x_axis"`
	YAxis string     `json:"y_axis"`
}

// Heatmap is the payload for heatmap charts: a rectangular matrix
// aligned to the row and column label orderings. Cells with no source
// rows hold 0.
type Heatmap struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

func (XYSeries) chartData()  {}
func (PieSeries) chartData() {}
func (Histogram) chartData() {}
func (BoxPlot) chartData()   {}
func (Heatmap) chartData()   {}

// ChartDataRequest is the request body for the chart-data endpoint.
type ChartDataRequest struct {
	SessionID  string            `json:"session_id" binding:"required"`
	ChartKind  ChartKind         `json:"chart_type" binding:"required"`
	Parameters map[string]string `json:"parameters" binding:"required"`
}

// ChartDataResponse is the response body for the chart-data endpoint.
type ChartDataResponse struct {
	ChartKind  ChartKind         `json:"chart_type"`
	Data       ChartData         `json:"data"`
	Parameters map[string]string `json:"parameters"`
}

// DataFrameInfo describes an ingested dataset in the upload response.
type DataFrameInfo struct {
	Shape              Shape                         `json:"shape"`
	Columns            []string                      `json:"columns"`
	ColumnsInfo        map[string]ColumnInfo         `json:"columns_info"`
	DTypes             map[string]DType              `json:"dtypes"`
	StatisticalSummary map[string]NumericSummary     `json:"statistical_summary"`
	CategoricalSummary map[string]CategoricalSummary `json:"categorical_summary"`
	Info               InfoSummary                   `json:"info_summary"`
	NullCounts         map[string]int                `json:"null_counts"`
	SampleData         []map[string]any              `json:"sample_data"`
}

// InfoSummary is a general overview of the dataset: dimensions, an
// approximate memory footprint and the column names per dtype class.
type InfoSummary struct {
	TotalRows          int      `json:"total_rows"`
	TotalColumns       int      `json:"total_columns"`
	MemoryUsage        string   `json:"memory_usage"`
	NumericColumns     []string `json:"numeric_columns"`
	CategoricalColumns []string `json:"categorical_columns"`
	DatetimeColumns    []string `json:"datetime_columns"`
}

// Shape holds dataset dimensions.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// UploadResponse is the response body for the upload endpoint.
type UploadResponse struct {
	Message    string        `json:"message"`
	SessionID  string        `json:"session_id"`
	Filename   string        `json:"filename"`
	FileType   string        `json:"file_type"`
	DataFrame  DataFrameInfo `json:"dataframe_info"`
	AIAnalysis AIAnalysis    `json:"ai_analysis"`
}

// AIAnalysis wraps the model-generated suggestions in the upload
// response.
type AIAnalysis struct {
	Suggestions []Suggestion `json:"visualization_suggestions"`
}
