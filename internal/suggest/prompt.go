package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tabviz/tabviz/internal/domain"
)

// systemPrompt frames the model as a data analyst that answers with
// JSON only, in the configured target language.
func systemPrompt(language string) string {
	return fmt.Sprintf("You are an expert data analyst. You identify significant findings in "+
		"datasets: patterns, trends, anomalies and correlations. Your insights describe "+
		"specific discoveries about the data, never the chart type. You answer ONLY with "+
		"valid JSON. All natural-language text must be written in %s.", language)
}

// buildPrompt renders a profile into the user prompt. Only the
// fixed-shape profile goes in: schema with null statistics, numeric
// descriptive statistics and categorical top values. Raw rows are
// never included.
func buildPrompt(p *domain.Profile) string {
	schema := mustJSON(p.Columns)
	numeric := "no numeric columns"
	if len(p.Numeric) > 0 {
		numeric = mustJSON(p.Numeric)
	}
	categorical := "no categorical columns"
	if len(p.Categorical) > 0 {
		categorical = mustJSON(p.Categorical)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this dataset and suggest 3-5 visualizations that highlight interesting patterns, trends or relationships.\n\n")
	fmt.Fprintf(&b, "Rows: %d | Columns: %d\n\n", p.Rows, p.Cols)
	fmt.Fprintf(&b, "Schema:\n%s\n\n", schema)
	fmt.Fprintf(&b, "Numeric statistics:\n%s\n\n", numeric)
	fmt.Fprintf(&b, "Categorical statistics:\n%s\n\n", categorical)
	b.WriteString(`INSTRUCTIONS:
- Identify patterns, anomalies, correlations or trends in the data
- Suggest 3-5 visualizations that demonstrate these findings
- Each visualization must include: title, chart_type, parameters, insight
- The "insight" must describe a SPECIFIC FINDING about the data, not the chart type
- Allowed chart_type values: bar, line, pie, scatter, histogram, box, heatmap, area
- Column names must match the schema exactly

PARAMETER CONVENTIONS:
- bar/line/scatter/area/box: {"x_axis": "...", "y_axis": "..."}
- pie: {"labels": "...", "values": "..."}
- histogram: {"column": "..."}
- heatmap: {"rows": "...", "columns": "...", "values": "..."}

Return a single JSON object of the form
{"visualization_suggestions": [ ... ]}
with no additional text.`)
	return b.String()
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
