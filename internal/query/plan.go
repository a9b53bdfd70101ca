// Package query answers questions about a table by interpreting a small,
// closed query plan. Nothing the model returns is ever evaluated as code.
package query

import (
	"errors"
	"strconv"
	"strings"

	"llm_data_assistant/src/llm"
)

var (
	// ErrRestrictedContent means the model output mentioned a blocked keyword
	ErrRestrictedContent = errors.New("restricted content")
	// ErrExecution means a plan could not be run against the table
	ErrExecution = errors.New("query execution failed")
)

// Plan is the query the model is asked to produce, e.g.
//
//	{"operation": "sum", "column": "sales",
//	 "filters": [{"column": "region", "op": "==", "value": "North"}],
//	 "group_by": "", "rank": ""}
type Plan struct {
	Operation string   `json:"operation"`
	Column    string   `json:"column"`
	Filters   []Filter `json:"filters"`
	GroupBy   string   `json:"group_by"`
	Rank      string   `json:"rank"`
}

// Filter keeps rows whose Column compares to Value with Op
type Filter struct {
	Column string `json:"column"`
	Op     string `json:"op"`
	Value  any    `json:"value"`
}

// ParsePlan decodes a plan from raw model output.
func ParsePlan(raw string) (*Plan, error) {
	var plan Plan
	if err := llm.DecodeJSON(raw, &plan); err != nil {
		return nil, err
	}
	plan.Operation = strings.ToLower(strings.TrimSpace(plan.Operation))
	plan.Rank = strings.ToLower(strings.TrimSpace(plan.Rank))
	plan.Column = strings.TrimSpace(plan.Column)
	plan.GroupBy = strings.TrimSpace(plan.GroupBy)
	if plan.Operation == "" {
		return nil, errors.New("query plan has no operation")
	}
	return &plan, nil
}

// valueString renders a decoded JSON scalar the way it appears in a cell
func valueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case interface{ String() string }:
		return x.String()
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
