package nodes

import (
	"context"
	"errors"
	"fmt"

	"llm_data_assistant/internal/core"
	"llm_data_assistant/internal/query"
	"llm_data_assistant/src/llm/analyst"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"
)

const (
	msgNoQuery         = "Could not generate a query to answer the question."
	msgRestrictedQuery = "Generated query contains restricted keywords."
)

// QuestionNode answers a question by asking the model for a query plan and
// running it against the session table
type QuestionNode struct {
	analyst    *analyst.Analyst
	guard      *query.Guard
	sampleRows int
}

func NewQuestionNode(a *analyst.Analyst, guard *query.Guard, sampleRows int) *QuestionNode {
	return &QuestionNode{analyst: a, guard: guard, sampleRows: sampleRows}
}

func (n *QuestionNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	if input.Session == nil {
		return core.NodeOutput{}, errors.New("question node requires a session")
	}
	table := input.Session.Table

	raw, err := n.analyst.QueryPlan(ctx, input.Prompt, table.Columns, table.SampleText(n.sampleRows))
	if err != nil {
		logger.Warn().Err(err).Msg("Query plan generation failed")
		return single(model.Error(msgNoQuery)), nil
	}

	if err := n.guard.Check(raw); err != nil {
		logger.Warn().Err(err).Msg("Query plan rejected")
		return single(model.Error(msgRestrictedQuery)), nil
	}

	plan, err := query.ParsePlan(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("Query plan could not be parsed")
		return single(model.Error(msgNoQuery)), nil
	}

	answer, err := query.Execute(table, plan)
	if err != nil {
		return single(model.Error(fmt.Sprintf("Failed to execute query: %v", err))), nil
	}

	logger.Debug().Str("operation", plan.Operation).Str("answer", answer).Msg("Question answered")
	return single(model.Answer(fmt.Sprintf("The answer is: %s", answer))), nil
}

func (n *QuestionNode) GetName() string {
	return "ask_question"
}

func (n *QuestionNode) GetType() core.NodeType {
	return core.NodeTypeQuestion
}

func single(item model.ResultItem) core.NodeOutput {
	return core.NodeOutput{Items: []model.ResultItem{item}}
}
