package planner

import (
	"fmt"
	"strings"

	"llm_data_assistant/src/model"
)

// MaxActions caps how many actions one prompt may expand into
const MaxActions = 20

// MissingIntent names an action whose intent field is absent or blank
const MissingIntent = "<missing>"

// rawPlan mirrors the JSON object the intent model is asked to return
type rawPlan struct {
	Actions []rawAction `json:"actions"`
}

type rawAction struct {
	Intent   string `json:"intent"`
	Filename string `json:"filename"`
	Prompt   string `json:"prompt"`
}

// toActions converts decoded actions into the closed set of action types.
// Intents are matched after trimming and lower-casing; anything else becomes
// an UnknownAction that keeps the intent exactly as the model wrote it, or
// MissingIntent when there is none.
func (p rawPlan) toActions() ([]model.Action, error) {
	if len(p.Actions) > MaxActions {
		return nil, fmt.Errorf("too many actions: %d (max: %d)", len(p.Actions), MaxActions)
	}

	actions := make([]model.Action, 0, len(p.Actions))
	for _, raw := range p.Actions {
		switch strings.ToLower(strings.TrimSpace(raw.Intent)) {
		case model.IntentLoadData:
			actions = append(actions, model.LoadData{Filename: strings.TrimSpace(raw.Filename)})
		case model.IntentAskQuestion:
			actions = append(actions, model.AskQuestion{Prompt: strings.TrimSpace(raw.Prompt)})
		case model.IntentVisualizeData:
			actions = append(actions, model.VisualizeData{Prompt: strings.TrimSpace(raw.Prompt)})
		case "":
			actions = append(actions, model.UnknownAction{Name: MissingIntent})
		default:
			actions = append(actions, model.UnknownAction{Name: raw.Intent})
		}
	}
	return actions, nil
}
