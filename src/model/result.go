package model

// ----------------------------------------------------
// ================ Result items ================

// ResultType tags a result item
type ResultType string

const (
	ResultInsights ResultType = "insights"
	ResultTable    ResultType = "table"
	ResultChart    ResultType = "chart"
	ResultAnswer   ResultType = "answer"
	ResultError    ResultType = "error"
)

// ResultItem is emitted once per processed action (twice for a successful load).
// Chart items carry their payload in Spec, every other type in Data.
type ResultItem struct {
	Type ResultType `json:"type"`
	Data any        `json:"data,omitempty"`
	Spec *ChartSpec `json:"spec,omitempty"`
}

// ChartSpec is consumed by the frontend charting library, not rendered here
type ChartSpec struct {
	ChartType string `json:"chart_type"`
	XColumn   string `json:"x_column"`
	YColumn   string `json:"y_column"`
	Title     string `json:"title"`
}

func Insights(text string) ResultItem {
	return ResultItem{Type: ResultInsights, Data: text}
}

func Table(data any) ResultItem {
	return ResultItem{Type: ResultTable, Data: data}
}

func Chart(spec ChartSpec) ResultItem {
	return ResultItem{Type: ResultChart, Spec: &spec}
}

func Answer(text string) ResultItem {
	return ResultItem{Type: ResultAnswer, Data: text}
}

func Error(message string) ResultItem {
	return ResultItem{Type: ResultError, Data: message}
}
