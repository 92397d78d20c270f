package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	return NewDataset([]string{"name", "score"}, [][]Scalar{
		{Text("a"), Number(55)},
		{Text("b"), Number(90)},
		{Text("c")},
	})
}

func TestNewDatasetPadsRows(t *testing.T) {
	ds := sampleDataset()
	require.Equal(t, 3, ds.Len())
	assert.Len(t, ds.Rows[2], 2)
	assert.True(t, ds.Rows[2][1].IsMissing())
}

func TestDatasetColumn(t *testing.T) {
	ds := sampleDataset()

	values, ok := ds.Column("score")
	require.True(t, ok)
	assert.Equal(t, []Scalar{Number(55), Number(90), Missing()}, values)

	_, ok = ds.Column("absent")
	assert.False(t, ok)
	assert.Equal(t, -1, ds.ColumnIndex("absent"))
}

func TestDatasetSelectKeepsOrder(t *testing.T) {
	ds := sampleDataset()

	sub := ds.Select([]bool{true, false, true})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, ds.Columns, sub.Columns)
	assert.Equal(t, "a", sub.Rows[0][0].String())
	assert.Equal(t, "c", sub.Rows[1][0].String())

	assert.Equal(t, 0, ds.Select([]bool{false, false, false}).Len())
}
