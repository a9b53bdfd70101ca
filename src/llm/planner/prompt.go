package planner

import (
	"llm_data_assistant/src/llm"

	"github.com/cloudwego/eino/components/prompt"
)

func getSystemTemplate() string {
	return `You are an expert multi-task-detection assistant. Your task is to analyze a user's prompt
and break it down into a sequence of one or more actions.

The possible intents are: 'load_data', 'ask_question', 'visualize_data'.

You must respond with only a single, minified JSON object containing a list called "actions".
Each action in the list should have an "intent" and any necessary parameters.
- For 'load_data', include a "filename".
- For 'visualize_data' and 'ask_question', include the original "prompt" that corresponds to that action.
Keep the actions in the order the user asked for them.

Example 1:
User prompt: "Load sales_report.xlsx"
Your response: {"actions": [{"intent": "load_data", "filename": "sales_report.xlsx"}]}

Example 2:
User prompt: "Load sales_report.xlsx and then visualize sales by region"
Your response: {"actions": [{"intent": "load_data", "filename": "sales_report.xlsx"}, {"intent": "visualize_data", "prompt": "visualize sales by region"}]}

Example 3:
User prompt: "what is the total profit"
Your response: {"actions": [{"intent": "ask_question", "prompt": "what is the total profit"}]}`
}

func getUserTemplate() string {
	return `{{.input_text}}`
}

func createIntentTemplate() prompt.ChatTemplate {
	return llm.Messages(getSystemTemplate(), getUserTemplate())
}
