package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
)

var (
	numberPattern  = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?$`)
	groupedPattern = regexp.MustCompile(`^-?[1-9]\d{0,2}(,\d{3})+(\.\d+)?$`)
)

// missingValues are the cell texts read as missing, as pandas does by default
var missingValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether a cell holds no value
func IsMissing(cell string) bool {
	return missingValues[strings.TrimSpace(cell)]
}

// numberText returns cell as a JSON number literal with thousands
// separators removed
func numberText(cell string) (string, bool) {
	v := strings.TrimSpace(cell)
	switch {
	case numberPattern.MatchString(v):
		return v, true
	case groupedPattern.MatchString(v):
		return strings.ReplaceAll(v, ",", ""), true
	}
	return "", false
}

// ParseNumber reads a cell as a finite number. Plain decimals and
// comma-grouped ones ("1,000.5") are accepted; NaN, Inf, hex floats and
// out-of-range values are not.
func ParseNumber(cell string) (float64, bool) {
	v, ok := numberText(cell)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Table is an in-memory dataset: a header and string cells. Missing cells
// are stored as "" so every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string

	numeric []bool
}

// NewTable normalizes header and rows into a Table. Blank header cells are
// named "Unnamed: <i>", repeated names get ".1", ".2" suffixes, short rows
// are padded, and a row wider than the header is rejected.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no columns to parse from file")
	}

	columns := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	repeats := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for n := repeats[h]; taken[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n+1)
			repeats[h] = n + 1
		}
		taken[name] = true
		columns[i] = name
	}

	data := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(columns))
		}
		cells := make([]string, len(columns))
		copy(cells, row)
		data = append(data, cells)
	}

	t := &Table{Columns: columns, Rows: data}
	t.detectTypes()
	return t, nil
}

// a column is numeric when every present cell parses as a number and at
// least one cell is present
func (t *Table) detectTypes() {
	t.numeric = make([]bool, len(t.Columns))
	for c := range t.Columns {
		seen := false
		numeric := true
		for _, row := range t.Rows {
			if IsMissing(row[c]) {
				continue
			}
			seen = true
			if _, ok := ParseNumber(row[c]); !ok {
				numeric = false
				break
			}
		}
		t.numeric[c] = seen && numeric
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex finds a column by exact name, falling back to a
// case-insensitive match.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	for i, c := range t.Columns {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return i, true
		}
	}
	return -1, false
}

func (t *Table) IsNumeric(col int) bool {
	return col >= 0 && col < len(t.numeric) && t.numeric[col]
}

// Float parses a cell with ParseNumber.
func (t *Table) Float(row, col int) (float64, bool) {
	return ParseNumber(t.Rows[row][col])
}

// Head returns the first n rows as a new table sharing the row slices.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n], numeric: t.numeric}
}

// SampleCSV renders the first n rows as CSV with a leading row-index column.
func (t *Table) SampleCSV(n int) (string, error) {
	head := t.Head(n)

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(append([]string{""}, head.Columns...)); err != nil {
		return "", err
	}
	for i, row := range head.Rows {
		if err := w.Write(append([]string{strconv.Itoa(i)}, row...)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SampleText renders the first n rows as aligned columns with a leading
// row index.
func (t *Table) SampleText(n int) string {
	head := t.Head(n)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\t"+strings.Join(head.Columns, "\t"))
	for i, row := range head.Rows {
		fmt.Fprintln(w, strconv.Itoa(i)+"\t"+strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// splitTable is the split-orient wire form consumed by the frontend grid
type splitTable struct {
	Columns []string `json:"columns"`
	Index   []int    `json:"index"`
	Data    [][]any  `json:"data"`
}

func (t *Table) split() splitTable {
	out := splitTable{
		Columns: t.Columns,
		Index:   make([]int, len(t.Rows)),
		Data:    make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Index[i] = i
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = v
			if t.IsNumeric(c) {
				if num, ok := numberText(v); ok {
					cells[c] = json.Number(num)
				}
			}
		}
		out.Data[i] = cells
	}
	return out
}

// MarshalJSON encodes the table in split orientation:
// {"columns": [...], "index": [0..n-1], "data": [[...], ...]}.
// Cells of numeric columns are JSON numbers with thousands separators removed.
func (t *Table) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(t.split())
}
