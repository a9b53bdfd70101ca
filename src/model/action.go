package model

// ----------------------------------------------------
// ================ Actions ================

// Intent names understood by the planner
const (
	IntentLoadData      = "load_data"
	IntentAskQuestion   = "ask_question"
	IntentVisualizeData = "visualize_data"
)

// Action is one discrete step derived from a user prompt.
// The concrete types below are the only implementations.
type Action interface {
	Intent() string
	isAction()
}

// LoadData reads a file from the data directory into a new session
type LoadData struct {
	Filename string
}

// AskQuestion answers a question about the loaded dataset
type AskQuestion struct {
	Prompt string
}

// VisualizeData produces a chart spec for the loaded dataset
type VisualizeData struct {
	Prompt string
}

// UnknownAction carries an intent the router does not recognize
type UnknownAction struct {
	Name string
}

func (LoadData) Intent() string        { return IntentLoadData }
func (AskQuestion) Intent() string     { return IntentAskQuestion }
func (VisualizeData) Intent() string   { return IntentVisualizeData }
func (a UnknownAction) Intent() string { return a.Name }

func (LoadData) isAction()      {}
func (AskQuestion) isAction()   {}
func (VisualizeData) isAction() {}
func (UnknownAction) isAction() {}
