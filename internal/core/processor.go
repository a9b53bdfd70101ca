// Package core routes the actions of a prompt to their nodes and collects
// the result items.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"llm_data_assistant/internal/session"
	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"
)

const (
	msgMissingFilename = "Filename not specified for load_data."
	msgNoDataset       = "Please load a dataset first."
)

// Processor runs one prompt at a time: plan, then dispatch every action in
// order against the session store.
type Processor struct {
	mu      sync.Mutex
	planner Planner
	store   *session.Store
	nodes   map[NodeType]Node
}

func NewProcessor(planner Planner, store *session.Store) *Processor {
	return &Processor{
		planner: planner,
		store:   store,
		nodes:   make(map[NodeType]Node),
	}
}

// AddNode registers node for its type, replacing any earlier one
func (p *Processor) AddNode(node Node) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}
	if node.GetType() == "" {
		return fmt.Errorf("node %q has no type", node.GetName())
	}
	p.nodes[node.GetType()] = node
	logger.Debug().Str("node", node.GetName()).Str("type", string(node.GetType())).Msg("Node added")
	return nil
}

// Store exposes the session store, e.g. for health reporting
func (p *Processor) Store() *session.Store {
	return p.store
}

// Process handles one user prompt. The returned slice is never nil; action
// failures are reported as error items rather than returned.
func (p *Processor) Process(ctx context.Context, prompt string) []model.ResultItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	results := make([]model.ResultItem, 0)

	actions, err := p.planner.Plan(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("Planning failed")
		return append(results, model.Error(llm.Describe(err)))
	}

	for i, action := range actions {
		items, halt := p.dispatch(ctx, action, prompt)
		results = append(results, items...)
		if halt {
			logger.Warn().
				Str("intent", action.Intent()).
				Int("skipped", len(actions)-i-1).
				Msg("Processing halted")
			break
		}
	}

	logger.Info().
		Int("actions", len(actions)).
		Int("items", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("Prompt processed")
	return results
}

func (p *Processor) dispatch(ctx context.Context, action model.Action, prompt string) ([]model.ResultItem, bool) {
	switch a := action.(type) {
	case model.LoadData:
		if a.Filename == "" {
			return []model.ResultItem{model.Error(msgMissingFilename)}, false
		}
		return p.run(ctx, NodeTypeLoad, NodeInput{Action: a, Session: p.store.Current()})

	case model.AskQuestion:
		return p.runOnSession(ctx, NodeTypeQuestion, a, promptOr(a.Prompt, prompt))

	case model.VisualizeData:
		return p.runOnSession(ctx, NodeTypeChart, a, promptOr(a.Prompt, prompt))

	case model.UnknownAction:
		return []model.ResultItem{model.Error(fmt.Sprintf("Unknown intent: %s", a.Name))}, false

	default:
		return []model.ResultItem{model.Error(fmt.Sprintf("Unknown intent: %s", action.Intent()))}, false
	}
}

func (p *Processor) runOnSession(ctx context.Context, nodeType NodeType, action model.Action, prompt string) ([]model.ResultItem, bool) {
	current := p.store.Current()
	if current == nil {
		return []model.ResultItem{model.Answer(msgNoDataset)}, false
	}
	return p.run(ctx, nodeType, NodeInput{Action: action, Prompt: prompt, Session: current})
}

func (p *Processor) run(ctx context.Context, nodeType NodeType, input NodeInput) ([]model.ResultItem, bool) {
	node, ok := p.nodes[nodeType]
	if !ok {
		return []model.ResultItem{model.Error(fmt.Sprintf("No handler for intent: %s", input.Action.Intent()))}, false
	}

	start := time.Now()
	output, err := node.Execute(ctx, input)
	if err != nil {
		logger.Error().Err(err).Str("node", node.GetName()).Msg("Node failed")
		return []model.ResultItem{model.Error(err.Error())}, false
	}
	if output.Session != nil {
		p.store.Replace(output.Session)
	}

	logger.Debug().
		Str("node", node.GetName()).
		Int("items", len(output.Items)).
		Bool("halt", output.Halt).
		Dur("elapsed", time.Since(start)).
		Msg("Node executed")
	return output.Items, output.Halt
}

func promptOr(actionPrompt, fallback string) string {
	if actionPrompt != "" {
		return actionPrompt
	}
	return fallback
}
