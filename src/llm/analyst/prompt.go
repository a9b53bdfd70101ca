package analyst

import (
	"llm_data_assistant/src/llm"

	"github.com/cloudwego/eino/components/prompt"
)

func getInsightsSystemTemplate() string {
	return `You are a data analyst. Below is a sample of a dataset.
Provide a brief, bulleted list of 2-3 key insights or observations.`
}

func getChartSystemTemplate() string {
	return `You are a chart generation assistant. Based on the user's prompt and the available data columns,
determine the best chart type and columns.
Available columns: [{{.columns}}]
Possible chart types: 'bar', 'line', 'pie'.
Respond with a single, minified JSON object: {"chart_type": "type", "x_column": "x", "y_column": "y", "title": "title"}`
}

func getQuerySystemTemplate() string {
	return `You are a data analyst answering questions about a table. Given the columns and the first rows
of the table, describe how to compute the answer as a query plan.
The result must be a single value.

Available columns: [{{.columns}}]
Table head:
{{.sample}}

Respond with only a single, minified JSON object with these fields:
- "operation": one of "count", "count_distinct", "sum", "mean", "median", "min", "max", "value"
- "column": the column the operation applies to ("" for counting rows)
- "filters": a list of {"column": "...", "op": "==|!=|>|>=|<|<=|contains", "value": ...}, all of which must hold
- "group_by": a column to group by, or ""
- "rank": "highest" or "lowest" to return the group with the largest or smallest result, or ""

Example 1:
Question: "what is the total profit"
Your response: {"operation": "sum", "column": "profit", "filters": [], "group_by": "", "rank": ""}

Example 2:
Question: "which region had the highest sales in 2023"
Your response: {"operation": "sum", "column": "sales", "filters": [{"column": "year", "op": "==", "value": 2023}], "group_by": "region", "rank": "highest"}`
}

func getQuestionTemplate() string {
	return `{{.input_text}}`
}

func createInsightsTemplate() prompt.ChatTemplate {
	return llm.Messages(getInsightsSystemTemplate(), `{{.sample}}`)
}

func createChartTemplate() prompt.ChatTemplate {
	return llm.Messages(getChartSystemTemplate(), getQuestionTemplate())
}

func createQueryTemplate() prompt.ChatTemplate {
	return llm.Messages(getQuerySystemTemplate(), getQuestionTemplate())
}
