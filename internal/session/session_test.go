package session

import (
	"testing"

	"llm_data_assistant/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, col string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTable([]string{col}, [][]string{{"1"}})
	require.NoError(t, err)
	return tbl
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Current(), "fresh store has no session")

	first := New("a.csv", table(t, "a"))
	assert.Nil(t, store.Replace(first))
	assert.Same(t, first, store.Current())
	assert.False(t, first.LoadedAt.IsZero())

	second := New("b.csv", table(t, "b"))
	assert.Same(t, first, store.Replace(second))
	assert.Equal(t, "b.csv", store.Current().Filename)
	assert.Equal(t, []string{"b"}, store.Current().Table.Columns)
	// the replaced session is untouched
	assert.Equal(t, "a.csv", first.Filename)

	store.Reset()
	assert.Nil(t, store.Current())
}
