package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	guard := NewGuard(nil)

	blocked := []string{
		`import os`,
		`{"operation": "sum", "column": "import_value"}`,
		`{"operation": "sum", "column": "__class__"}`,
		`eval(df)`,
		`{"operation": "value", "column": "executor"}`,
		`sys.exit()`,
		`os.remove('a')`,
	}
	for _, text := range blocked {
		err := guard.Check(text)
		assert.True(t, errors.Is(err, ErrRestrictedContent), "expected %q to be blocked", text)
	}

	allowed := []string{
		`{"operation": "sum", "column": "cost"}`,
		`{"operation": "value", "column": "position"}`,
		`{"operation": "mean", "column": "systolic"}`,
		`{"operation": "count", "filters": [{"column": "os_version", "op": "==", "value": "14"}]}`,
		`{"operation": "count", "filters": [{"column": "title", "op": "==", "value": "Executive"}]}`,
	}
	for _, text := range allowed {
		assert.NoError(t, guard.Check(text), "expected %q to pass", text)
	}
}

func TestGuardCustomKeywords(t *testing.T) {
	guard := NewGuard([]string{"drop", " ", ";"})

	assert.Error(t, guard.Check("drop table"))
	assert.Error(t, guard.Check("a; b"))
	assert.NoError(t, guard.Check("import os"))
}
