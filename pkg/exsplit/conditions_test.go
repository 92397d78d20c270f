package exsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionList(t *testing.T) {
	var list ConditionList

	require.NoError(t, list.Add(mustText(t, "c", "a", false, "A")))
	require.NoError(t, list.Add(mustText(t, "c", "b", false, "B")))
	require.NoError(t, list.Add(mustText(t, "c", "c", false, "C")))
	require.NoError(t, list.Add(mustText(t, "c", "d", false, "D")))

	bad := Condition{Column: "c", Kind: KindRegex, OutputName: "X"}
	assert.Error(t, list.Add(bad))
	assert.Equal(t, 4, list.Len(), "invalid condition is not added")

	require.NoError(t, list.Delete(2, 0, 2))
	names := outputNames(list.Snapshot())
	assert.Equal(t, []string{"B", "D"}, names)

	assert.Error(t, list.Delete(5))
	assert.Equal(t, 2, list.Len(), "failed delete removes nothing")

	list.Clear()
	assert.Equal(t, 0, list.Len())
	assert.Empty(t, list.Snapshot())
}

func TestConditionListSnapshotIsFrozen(t *testing.T) {
	var list ConditionList
	require.NoError(t, list.Add(mustText(t, "c", "a", false, "A")))

	snap := list.Snapshot()
	require.NoError(t, list.Add(mustText(t, "c", "b", false, "B")))
	snap[0].OutputName = "changed"

	assert.Len(t, snap, 1)
	assert.Equal(t, "A", list.Snapshot()[0].OutputName)
}

func outputNames(conds []Condition) []string {
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = c.OutputName
	}
	return names
}
