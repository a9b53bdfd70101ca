package nodes

import (
	"context"
	"fmt"

	"llm_data_assistant/internal/core"
	"llm_data_assistant/internal/dataset"
	"llm_data_assistant/internal/session"
	"llm_data_assistant/src/llm/analyst"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"
)

// LoadNode reads a file into a new session and describes it
type LoadNode struct {
	loader     *dataset.Loader
	analyst    *analyst.Analyst
	sampleRows int
}

func NewLoadNode(loader *dataset.Loader, a *analyst.Analyst, sampleRows int) *LoadNode {
	return &LoadNode{loader: loader, analyst: a, sampleRows: sampleRows}
}

// Execute loads the file named by a LoadData action. A failed load halts
// the remaining actions; a successful one yields insights and then the table.
func (n *LoadNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	action, ok := input.Action.(model.LoadData)
	if !ok {
		return core.NodeOutput{}, fmt.Errorf("load node cannot handle %s", input.Action.Intent())
	}

	table, err := n.loader.Load(action.Filename)
	if err != nil {
		logger.Warn().Err(err).Str("file", action.Filename).Msg("Dataset load failed")
		return core.NodeOutput{
			Items: []model.ResultItem{model.Error(dataset.Describe(err, action.Filename))},
			Halt:  true,
		}, nil
	}

	sess := session.New(action.Filename, table)

	insights := analyst.InsightsFallback
	if sample, err := table.SampleCSV(n.sampleRows); err == nil {
		insights = n.analyst.Insights(ctx, sample)
	} else {
		logger.Warn().Err(err).Msg("Could not render dataset sample")
	}

	return core.NodeOutput{
		Items: []model.ResultItem{
			model.Insights(insights),
			model.Table(table),
		},
		Session: sess,
	}, nil
}

func (n *LoadNode) GetName() string {
	return "load_data"
}

func (n *LoadNode) GetType() core.NodeType {
	return core.NodeTypeLoad
}
