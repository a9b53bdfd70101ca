package analyst_test

import (
	"context"
	"errors"
	"testing"

	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/llm/analyst"
	"llm_data_assistant/src/llm/llmtest"
	"llm_data_assistant/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"region", "sales", "profit"}

func newAnalyst(structured, text *llmtest.ChatModel) *analyst.Analyst {
	return analyst.New(llm.NewGateway(structured, text))
}

func TestInsights(t *testing.T) {
	text := llmtest.NewChatModel().On(llm.TaskInsights, "- North leads sales\n- Profit is thin in the South")
	a := newAnalyst(llmtest.NewChatModel(), text)

	got := a.Insights(context.Background(), ",region,sales\n0,North,120\n")
	assert.Equal(t, "- North leads sales\n- Profit is thin in the South", got)

	calls := text.Calls(llm.TaskInsights)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[0].Content, "bulleted list of 2-3 key insights")
	assert.Equal(t, ",region,sales\n0,North,120\n", calls[0].Messages[1].Content)
}

func TestInsightsFallback(t *testing.T) {
	text := llmtest.NewChatModel().Fail(llm.TaskInsights, errors.New("boom")).On(llm.TaskInsights, "   ")
	a := newAnalyst(llmtest.NewChatModel(), text)

	assert.Equal(t, analyst.InsightsFallback, a.Insights(context.Background(), "x"))
	assert.Equal(t, analyst.InsightsFallback, a.Insights(context.Background(), "x"))
}

func TestChartDetails(t *testing.T) {
	structured := llmtest.NewChatModel().On(llm.TaskChart,
		`{"chart_type": "Bar", "x_column": "Region", "y_column": "sales", "title": "Sales by Region"}`)
	a := newAnalyst(structured, llmtest.NewChatModel())

	spec, err := a.ChartDetails(context.Background(), "chart sales by region", columns)
	require.NoError(t, err)
	assert.Equal(t, model.ChartSpec{ChartType: "bar", XColumn: "region", YColumn: "sales", Title: "Sales by Region"}, spec)

	calls := structured.Calls(llm.TaskChart)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[0].Content, "Available columns: [region, sales, profit]")
	assert.Equal(t, "chart sales by region", calls[0].Messages[1].Content)
}

func TestChartDetailsDefaultsTitle(t *testing.T) {
	structured := llmtest.NewChatModel().On(llm.TaskChart, `{"chart_type": "pie", "x_column": "region", "y_column": "profit"}`)
	a := newAnalyst(structured, llmtest.NewChatModel())

	spec, err := a.ChartDetails(context.Background(), "profit share", columns)
	require.NoError(t, err)
	assert.Equal(t, "profit by region", spec.Title)
}

func TestChartDetailsRejectsInvalidCharts(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"chart type", `{"chart_type": "scatter", "x_column": "region", "y_column": "sales"}`, `unsupported chart type "scatter"`},
		{"x column", `{"chart_type": "bar", "x_column": "city", "y_column": "sales"}`, `unknown x_column "city"`},
		{"y column", `{"chart_type": "line", "x_column": "region", "y_column": "revenue"}`, `unknown y_column "revenue"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnalyst(llmtest.NewChatModel().On(llm.TaskChart, tt.reply), llmtest.NewChatModel())

			_, err := a.ChartDetails(context.Background(), "chart", columns)
			require.Error(t, err)
			assert.True(t, errors.Is(err, analyst.ErrInvalidChart))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestChartDetailsMalformed(t *testing.T) {
	a := newAnalyst(llmtest.NewChatModel().On(llm.TaskChart, "a bar chart would be nice"), llmtest.NewChatModel())

	_, err := a.ChartDetails(context.Background(), "chart", columns)
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrMalformedResponse))
}

func TestQueryPlanReturnsRawReply(t *testing.T) {
	reply := `{"operation": "sum", "column": "profit"}`
	structured := llmtest.NewChatModel().On(llm.TaskQuery, reply)
	a := newAnalyst(structured, llmtest.NewChatModel())

	raw, err := a.QueryPlan(context.Background(), "total profit", columns, "   region  sales\n0  North   120")
	require.NoError(t, err)
	assert.Equal(t, reply, raw)

	calls := structured.Calls(llm.TaskQuery)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[0].Content, "0  North   120")
	assert.Contains(t, calls[0].Messages[0].Content, "Available columns: [region, sales, profit]")
	assert.Equal(t, "total profit", calls[0].Messages[1].Content)
}
