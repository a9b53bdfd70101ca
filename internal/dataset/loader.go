// Package dataset reads tabular files from the data directory.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"llm_data_assistant/src/logger"

	"github.com/xuri/excelize/v2"
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrReadFile            = errors.New("error reading file")
)

// readError keeps the underlying cause so it can be shown to the user
type readError struct {
	cause error
}

func (e *readError) Error() string        { return "error reading file: " + e.cause.Error() }
func (e *readError) Unwrap() error        { return e.cause }
func (e *readError) Is(target error) bool { return target == ErrReadFile }

// Loader resolves file names against a fixed data directory
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) Dir() string {
	return l.dir
}

// Load reads filename from the data directory. Existence is checked before
// the extension, so a missing .txt file reports ErrFileNotFound.
func (l *Loader) Load(filename string) (*Table, error) {
	// names escaping the data directory are treated as absent
	if !filepath.IsLocal(filename) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
	}
	path := filepath.Join(l.dir, filename)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return nil, &readError{cause: err}
	}

	var (
		table *Table
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		table, err = readCSV(path)
	case ".xlsx":
		table, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
	if err != nil {
		return nil, &readError{cause: err}
	}

	logger.Info().
		Str("file", filename).
		Int("rows", table.Len()).
		Int("columns", len(table.Columns)).
		Msg("Dataset loaded")
	return table, nil
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return NewTable(header, rows)
}

// readXLSX reads the first sheet. Trailing empty cells are trimmed by
// excelize, so the header is widened to the widest row.
func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, row := range all {
		if !isBlank(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no columns to parse from file")
	}

	header, body := rows[0], rows[1:]
	width := len(header)
	for _, row := range body {
		width = max(width, len(row))
	}
	header = append(header, make([]string, width-len(header))...)
	return NewTable(header, body)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Describe turns a Load error into the message shown to the user.
func Describe(err error, filename string) string {
	var re *readError
	switch {
	case errors.Is(err, ErrFileNotFound):
		return fmt.Sprintf("File not found: %s", filename)
	case errors.Is(err, ErrUnsupportedFileType):
		return "Unsupported file type. Please use .csv or .xlsx."
	case errors.As(err, &re):
		return fmt.Sprintf("Error reading file: %v", re.cause)
	default:
		return fmt.Sprintf("Error reading file: %v", err)
	}
}
