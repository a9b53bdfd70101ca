package nodes

import (
	"context"
	"errors"
	"fmt"

	"llm_data_assistant/internal/core"
	"llm_data_assistant/src/llm/analyst"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"
)

const msgNoChart = "Could not determine chart details."

// ChartNode turns a visualization request into a chart spec for the frontend
type ChartNode struct {
	analyst *analyst.Analyst
}

func NewChartNode(a *analyst.Analyst) *ChartNode {
	return &ChartNode{analyst: a}
}

func (n *ChartNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	if input.Session == nil {
		return core.NodeOutput{}, errors.New("chart node requires a session")
	}

	spec, err := n.analyst.ChartDetails(ctx, input.Prompt, input.Session.Table.Columns)
	if err != nil {
		logger.Warn().Err(err).Msg("Chart details failed")
		var chartErr *analyst.ChartError
		if errors.As(err, &chartErr) {
			return single(model.Error(fmt.Sprintf("Could not determine chart details: %s", chartErr.Reason))), nil
		}
		return single(model.Error(msgNoChart)), nil
	}

	return single(model.Chart(spec)), nil
}

func (n *ChartNode) GetName() string {
	return "visualize_data"
}

func (n *ChartNode) GetType() core.NodeType {
	return core.NodeTypeChart
}
