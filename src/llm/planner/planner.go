// Package planner turns a user prompt into the ordered list of actions the
// router executes.
package planner

import (
	"context"
	"fmt"
	"time"

	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"

	"github.com/cloudwego/eino/components/prompt"
)

type Planner struct {
	gateway  *llm.Gateway
	template prompt.ChatTemplate
}

func New(gateway *llm.Gateway) *Planner {
	return &Planner{
		gateway:  gateway,
		template: createIntentTemplate(),
	}
}

// Plan asks the intent model for the actions in userPrompt. Errors wrap
// llm.ErrModelUnavailable or llm.ErrMalformedResponse where applicable.
func (p *Planner) Plan(ctx context.Context, userPrompt string) ([]model.Action, error) {
	start := time.Now()
	ctx = llm.WithTask(ctx, llm.TaskIntent)

	var plan rawPlan
	if err := p.gateway.GenerateJSON(ctx, p.template, map[string]any{"input_text": userPrompt}, &plan); err != nil {
		return nil, err
	}

	actions, err := plan.toActions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}

	logger.Info().
		Int("actions", len(actions)).
		Dur("elapsed", time.Since(start)).
		Msg("Prompt planned")
	return actions, nil
}
