package exsplit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

func TestSplitSingleFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "split_result.xlsx")
	req := Request{
		Dataset: scoreDataset(),
		Conditions: []Condition{
			mustNumeric(t, "分数", OpGE, 90, nil, false, "优秀"),
			mustNumeric(t, "成绩", OpGE, 0, nil, false, "skipped"),
			mustNumeric(t, "分数", OpLT, 60, nil, false, "优秀"),
		},
		Options: Options{Mode: ModeSingle, Output: out},
	}

	res, err := Split(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Partitions, 2)
	require.NotNil(t, res.Written)
	assert.Equal(t, []string{"优秀", "优秀_1"}, res.Written.Sheets)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("优秀_1")
	require.NoError(t, err)
	assert.Len(t, rows, 11, "header plus ten failing students")
}

func TestSplitMultiFile(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		Dataset: scoreDataset(),
		Conditions: []Condition{
			mustText(t, "评语", "优秀", false, "A/B"),
			mustText(t, "评语", "加强", false, "A/B"),
			mustText(t, "评语", "不存在", false, "none"),
		},
		Options: Options{Mode: ModeMulti, Output: dir},
	}

	res, err := Split(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "AB.xlsx"), filepath.Join(dir, "AB_1.xlsx")}, res.Written.Paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "the empty partition produces no file")
}

func TestSplitEmptyResultWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.xlsx")
	req := Request{
		Dataset:    scoreDataset(),
		Conditions: []Condition{mustNumeric(t, "分数", OpGT, 100, nil, false, "none")},
		Options:    Options{Mode: ModeSingle, Output: out},
	}

	res, err := Split(context.Background(), req)
	assert.True(t, errors.Is(err, ErrEmptyResult))
	require.NotNil(t, res)
	assert.Empty(t, res.Partitions)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplitDryRun(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		Dataset:    scoreDataset(),
		Conditions: []Condition{mustNumeric(t, "分数", OpRange, 90, ptr(60), false, "mid")},
		Options:    Options{Mode: ModeMulti, Output: dir, DryRun: true},
	}

	res, err := Split(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Partitions, 1)
	assert.Equal(t, 31, res.Partitions[0].Rows())
	assert.Nil(t, res.Written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSplitRejectsBadRequests(t *testing.T) {
	ds := scoreDataset()
	cond := mustText(t, "评语", "优秀", false, "o")

	_, err := Split(context.Background(), Request{Dataset: ds})
	assert.True(t, errors.Is(err, ErrNoConditions))

	_, err = Split(context.Background(), Request{Conditions: []Condition{cond}})
	assert.Error(t, err)

	_, err = Split(context.Background(), Request{Dataset: ds, Conditions: []Condition{cond}, Options: Options{Mode: "zip"}})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	handMade := Condition{Column: "评语", Kind: KindRegex, OutputName: "o"}
	_, err = Split(context.Background(), Request{Dataset: ds, Conditions: []Condition{handMade}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestOptionsOutputPath(t *testing.T) {
	assert.Equal(t, DefaultWorkbookName, Options{Mode: ModeSingle}.OutputPath())
	assert.Equal(t, ".", Options{Mode: ModeMulti}.OutputPath())
	assert.Equal(t, "x.xlsx", Options{Mode: ModeSingle, Output: "x.xlsx"}.OutputPath())

	mode, err := ParseMode("Files")
	require.NoError(t, err)
	assert.Equal(t, ModeMulti, mode)
	_, err = ParseMode("zip")
	assert.Error(t, err)
}
