package query

import (
	"fmt"
	"sort"
	"strings"

	"llm_data_assistant/internal/dataset"
)

var operationAliases = map[string]string{
	"count":          "count",
	"count_distinct": "count_distinct",
	"nunique":        "count_distinct",
	"sum":            "sum",
	"total":          "sum",
	"mean":           "mean",
	"avg":            "mean",
	"average":        "mean",
	"median":         "median",
	"min":            "min",
	"max":            "max",
	"value":          "value",
	"lookup":         "value",
}

var filterOps = map[string]string{
	"==": "==", "=": "==", "eq": "==",
	"!=": "!=", "<>": "!=", "ne": "!=",
	">": ">", "gt": ">",
	">=": ">=", "gte": ">=",
	"<": "<", "lt": "<",
	"<=": "<=", "lte": "<=",
	"contains": "contains",
}

// result is a scalar answer, either numeric or text
type result struct {
	num   float64
	text  string
	isNum bool
}

func numberResult(f float64) result { return result{num: f, isNum: true} }
func textResult(s string) result    { return result{text: s} }

func (r result) String() string {
	if r.isNum {
		return formatNumber(r.num)
	}
	return r.text
}

// ExecError describes why a plan could not run. It matches ErrExecution.
type ExecError struct {
	Reason string
}

func (e *ExecError) Error() string        { return e.Reason }
func (e *ExecError) Is(target error) bool { return target == ErrExecution }

func execError(format string, args ...any) error {
	return &ExecError{Reason: fmt.Sprintf(format, args...)}
}

// Execute runs plan against table and renders the scalar answer. Every
// failure wraps ErrExecution.
func Execute(table *dataset.Table, plan *Plan) (string, error) {
	op, ok := operationAliases[plan.Operation]
	if !ok {
		return "", execError("unsupported operation %q", plan.Operation)
	}

	col := -1
	if plan.Column != "" {
		idx, ok := table.ColumnIndex(plan.Column)
		if !ok {
			return "", execError("unknown column %q", plan.Column)
		}
		col = idx
	}
	if col < 0 && op != "count" {
		return "", execError("operation %q requires a column", op)
	}

	rows, err := applyFilters(table, plan.Filters)
	if err != nil {
		return "", err
	}

	if plan.GroupBy == "" {
		r, err := aggregate(table, rows, op, col)
		if err != nil {
			return "", err
		}
		return r.String(), nil
	}

	groupCol, ok := table.ColumnIndex(plan.GroupBy)
	if !ok {
		return "", execError("unknown group_by column %q", plan.GroupBy)
	}
	return executeGrouped(table, rows, op, col, groupCol, plan.Rank)
}

func applyFilters(table *dataset.Table, filters []Filter) ([]int, error) {
	type compiled struct {
		col   int
		op    string
		value string
	}
	checks := make([]compiled, 0, len(filters))
	for _, f := range filters {
		col, ok := table.ColumnIndex(f.Column)
		if !ok {
			return nil, execError("unknown filter column %q", f.Column)
		}
		op, ok := filterOps[strings.ToLower(strings.TrimSpace(f.Op))]
		if !ok {
			return nil, execError("unsupported filter operator %q", f.Op)
		}
		checks = append(checks, compiled{col: col, op: op, value: valueString(f.Value)})
	}

	rows := make([]int, 0, table.Len())
	for i, row := range table.Rows {
		pass := true
		for _, c := range checks {
			if !compare(row[c.col], c.op, c.value) {
				pass = false
				break
			}
		}
		if pass {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// compare is numeric when both sides parse as numbers and a
// case-insensitive string comparison otherwise. A missing cell only
// satisfies "!=".
func compare(cell, op, value string) bool {
	if dataset.IsMissing(cell) {
		return op == "!="
	}
	cell = strings.TrimSpace(cell)
	value = strings.TrimSpace(value)

	if op == "contains" {
		return strings.Contains(strings.ToLower(cell), strings.ToLower(value))
	}

	var cmp int
	a, okA := dataset.ParseNumber(cell)
	b, okB := dataset.ParseNumber(value)
	if okA && okB {
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(cell), strings.ToLower(value))
	}

	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	}
	return false
}

func aggregate(table *dataset.Table, rows []int, op string, col int) (result, error) {
	switch op {
	case "count":
		if col < 0 {
			return numberResult(float64(len(rows))), nil
		}
		n := 0
		for _, i := range rows {
			if !dataset.IsMissing(table.Rows[i][col]) {
				n++
			}
		}
		return numberResult(float64(n)), nil

	case "count_distinct":
		seen := make(map[string]struct{})
		for _, i := range rows {
			if v := table.Rows[i][col]; !dataset.IsMissing(v) {
				seen[strings.TrimSpace(v)] = struct{}{}
			}
		}
		return numberResult(float64(len(seen))), nil

	case "value":
		if len(rows) == 0 {
			return result{}, execError("no rows match the filters")
		}
		return textResult(table.Rows[rows[0]][col]), nil

	case "min", "max":
		if len(rows) == 0 {
			return result{}, execError("no rows match the filters")
		}
		nums, err := numbers(table, rows, col)
		if err != nil {
			return extremeText(table, rows, col, op == "max")
		}
		if len(nums) == 0 {
			return result{}, execError("column %q has no values", table.Columns[col])
		}
		best := nums[0]
		for _, v := range nums[1:] {
			if (op == "max" && v > best) || (op == "min" && v < best) {
				best = v
			}
		}
		return numberResult(best), nil
	}

	nums, err := numbers(table, rows, col)
	if err != nil {
		return result{}, err
	}
	switch op {
	case "sum":
		var total float64
		for _, v := range nums {
			total += v
		}
		return numberResult(total), nil
	case "mean":
		if len(nums) == 0 {
			return result{}, execError("no values to average in column %q", table.Columns[col])
		}
		var total float64
		for _, v := range nums {
			total += v
		}
		return numberResult(total / float64(len(nums))), nil
	case "median":
		if len(nums) == 0 {
			return result{}, execError("no values for median in column %q", table.Columns[col])
		}
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return numberResult(sorted[mid]), nil
		}
		return numberResult((sorted[mid-1] + sorted[mid]) / 2), nil
	}
	return result{}, execError("unsupported operation %q", op)
}

// numbers collects the present cells of col as floats
func numbers(table *dataset.Table, rows []int, col int) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for _, i := range rows {
		if dataset.IsMissing(table.Rows[i][col]) {
			continue
		}
		v, ok := table.Float(i, col)
		if !ok {
			return nil, execError("column %q has non-numeric value %q", table.Columns[col], table.Rows[i][col])
		}
		out = append(out, v)
	}
	return out, nil
}

func extremeText(table *dataset.Table, rows []int, col int, highest bool) (result, error) {
	var best string
	found := false
	for _, i := range rows {
		if dataset.IsMissing(table.Rows[i][col]) {
			continue
		}
		v := strings.TrimSpace(table.Rows[i][col])
		if !found || (highest && v > best) || (!highest && v < best) {
			best = v
			found = true
		}
	}
	if !found {
		return result{}, execError("column %q has no values", table.Columns[col])
	}
	return textResult(best), nil
}

type group struct {
	label string
	rows  []int
	value result
}

func executeGrouped(table *dataset.Table, rows []int, op string, col, groupCol int, rank string) (string, error) {
	var groups []*group
	index := make(map[string]*group)
	for _, i := range rows {
		key := strings.TrimSpace(table.Rows[i][groupCol])
		g, ok := index[key]
		if !ok {
			g = &group{label: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, i)
	}
	if len(groups) == 0 {
		return "", execError("no rows match the filters")
	}

	for _, g := range groups {
		r, err := aggregate(table, g.rows, op, col)
		if err != nil {
			return "", err
		}
		g.value = r
	}

	switch rank {
	case "":
		parts := make([]string, len(groups))
		for i, g := range groups {
			parts[i] = g.label + ": " + g.value.String()
		}
		return strings.Join(parts, ", "), nil
	case "highest", "max", "top":
		return pickGroup(groups, true)
	case "lowest", "min", "bottom":
		return pickGroup(groups, false)
	default:
		return "", execError("unsupported rank %q", rank)
	}
}

// pickGroup returns the label of the group with the highest (or lowest)
// value. Ties keep the group seen first.
func pickGroup(groups []*group, highest bool) (string, error) {
	var best *group
	for _, g := range groups {
		if !g.value.isNum {
			return "", execError("cannot rank non-numeric result %q", g.value.text)
		}
		if best == nil || (highest && g.value.num > best.value.num) || (!highest && g.value.num < best.value.num) {
			best = g
		}
	}
	return best.label, nil
}
