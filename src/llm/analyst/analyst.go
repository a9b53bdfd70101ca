// Package analyst holds the model-backed generators that work on a loaded
// dataset: insights, chart details and query plans.
package analyst

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"

	"github.com/cloudwego/eino/components/prompt"
)

// InsightsFallback is returned in place of insights when generation fails
const InsightsFallback = "Could not generate insights."

// ErrInvalidChart means the model proposed a chart that cannot be drawn
// from the table
var ErrInvalidChart = errors.New("invalid chart details")

// ChartError names the problem with a proposed chart. It matches
// ErrInvalidChart.
type ChartError struct {
	Reason string
}

func (e *ChartError) Error() string        { return "invalid chart details: " + e.Reason }
func (e *ChartError) Is(target error) bool { return target == ErrInvalidChart }

var chartTypes = map[string]bool{"bar": true, "line": true, "pie": true}

type Analyst struct {
	gateway  *llm.Gateway
	insights prompt.ChatTemplate
	chart    prompt.ChatTemplate
	query    prompt.ChatTemplate
}

func New(gateway *llm.Gateway) *Analyst {
	return &Analyst{
		gateway:  gateway,
		insights: createInsightsTemplate(),
		chart:    createChartTemplate(),
		query:    createQueryTemplate(),
	}
}

// Insights asks the text model for a few observations about a CSV sample.
// It never fails: any error yields InsightsFallback.
func (a *Analyst) Insights(ctx context.Context, sampleCSV string) string {
	ctx = llm.WithTask(ctx, llm.TaskInsights)
	text, err := a.gateway.GenerateText(ctx, a.insights, map[string]any{"sample": sampleCSV})
	if err != nil || text == "" {
		logger.Warn().Err(err).Msg("Insights generation failed")
		return InsightsFallback
	}
	return text
}

// ChartDetails asks the structured model which chart answers request.
// The chart type is lower-cased and must be bar, line or pie; both columns
// must be among columns. Validation failures are returned as *ChartError.
func (a *Analyst) ChartDetails(ctx context.Context, request string, columns []string) (model.ChartSpec, error) {
	ctx = llm.WithTask(ctx, llm.TaskChart)

	var spec model.ChartSpec
	vars := map[string]any{
		"columns":    strings.Join(columns, ", "),
		"input_text": request,
	}
	if err := a.gateway.GenerateJSON(ctx, a.chart, vars, &spec); err != nil {
		return model.ChartSpec{}, err
	}

	spec.ChartType = strings.ToLower(strings.TrimSpace(spec.ChartType))
	if !chartTypes[spec.ChartType] {
		return model.ChartSpec{}, &ChartError{Reason: fmt.Sprintf("unsupported chart type %q", spec.ChartType)}
	}

	var ok bool
	if spec.XColumn, ok = matchColumn(spec.XColumn, columns); !ok {
		return model.ChartSpec{}, &ChartError{Reason: fmt.Sprintf("unknown x_column %q", spec.XColumn)}
	}
	if spec.YColumn, ok = matchColumn(spec.YColumn, columns); !ok {
		return model.ChartSpec{}, &ChartError{Reason: fmt.Sprintf("unknown y_column %q", spec.YColumn)}
	}
	if strings.TrimSpace(spec.Title) == "" {
		spec.Title = fmt.Sprintf("%s by %s", spec.YColumn, spec.XColumn)
	}
	return spec, nil
}

// QueryPlan asks the structured model for a query plan answering question
// and returns the raw reply so it can be screened before decoding.
func (a *Analyst) QueryPlan(ctx context.Context, question string, columns []string, sample string) (string, error) {
	ctx = llm.WithTask(ctx, llm.TaskQuery)
	vars := map[string]any{
		"columns":    strings.Join(columns, ", "),
		"sample":     sample,
		"input_text": question,
	}
	return a.gateway.GenerateRaw(ctx, a.query, vars)
}

// matchColumn returns the table's spelling of name, matching exactly first
// and then ignoring case
func matchColumn(name string, columns []string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, c := range columns {
		if c == name {
			return c, true
		}
	}
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return name, false
}
