package core

import (
	"context"

	"llm_data_assistant/internal/session"
	"llm_data_assistant/src/model"
)

// Node handles one kind of action
type Node interface {
	Execute(ctx context.Context, input NodeInput) (NodeOutput, error)
	GetName() string
	GetType() NodeType
}

// NodeType identifies which actions a node serves
type NodeType string

const (
	NodeTypeLoad     NodeType = "load"
	NodeTypeQuestion NodeType = "question"
	NodeTypeChart    NodeType = "chart"
)

// NodeInput contains the input data for a node
type NodeInput struct {
	Action model.Action
	// Prompt is the action's own prompt, or the whole user prompt when the
	// planner left it empty
	Prompt string
	// Session is the active session; nil only for load nodes before the
	// first load
	Session *session.Session
}

// NodeOutput contains the output data from a node
type NodeOutput struct {
	Items []model.ResultItem
	// Session, when set, becomes the active session before Items are emitted
	Session *session.Session
	// Halt stops processing of the remaining actions
	Halt bool
}

// Planner turns a prompt into actions
type Planner interface {
	Plan(ctx context.Context, prompt string) ([]model.Action, error)
}
