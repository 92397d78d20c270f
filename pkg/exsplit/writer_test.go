package exsplit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

func namedPartitions(ds *models.Dataset, names ...string) []models.Partition {
	parts := make([]models.Partition, len(names))
	for i, n := range names {
		parts[i] = models.Partition{Name: n, Data: ds}
	}
	return parts
}

func smallDataset() *models.Dataset {
	return models.NewDataset([]string{"姓名", "分数", "备注"}, [][]models.Scalar{
		{models.Text("学生1"), models.Number(95), models.Missing()},
		{models.Text("学生2"), models.Number(88.5), models.Text("ok")},
	})
}

func TestWriteWorkbookDeduplicatesByCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	res, err := WriteWorkbook(context.Background(), path, namedPartitions(smallDataset(), "优秀", "优秀"))
	require.NoError(t, err)
	assert.Equal(t, []string{"优秀", "优秀_1"}, res.Sheets)
	assert.Equal(t, 2, res.Count())
	assert.Equal(t, []string{path}, res.Paths)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"优秀", "优秀_1"}, f.GetSheetList())

	rows, err := f.GetRows("优秀_1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"姓名", "分数", "备注"}, rows[0])
	assert.Equal(t, []string{"学生1", "95"}, rows[1])
	assert.Equal(t, []string{"学生2", "88.5", "ok"}, rows[2])
}

func TestWriteWorkbookSuffixUsesSheetCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	res, err := WriteWorkbook(context.Background(), path, namedPartitions(smallDataset(), "A", "B", "A", "a", "A_2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "A_2", "a_3", "A_2_4"}, res.Sheets)
}

func TestWriteWorkbookLegalSheetNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	long := strings.Repeat("名", 40)

	res, err := WriteWorkbook(context.Background(), path, namedPartitions(smallDataset(), "A/B", "'quoted'", long, long, "[]"))
	require.NoError(t, err)
	require.Len(t, res.Sheets, 5)
	assert.Equal(t, "A_B", res.Sheets[0])
	assert.Equal(t, "quoted", res.Sheets[1])
	assert.Equal(t, strings.Repeat("名", 31), res.Sheets[2])
	assert.Equal(t, strings.Repeat("名", 29)+"_3", res.Sheets[3])
	assert.Equal(t, "__", res.Sheets[4])
}

func TestWriteWorkbookFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.xlsx")

	_, err := WriteWorkbook(context.Background(), path, namedPartitions(smallDataset(), "A"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, path, writeErr.Path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteWorkbookLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteWorkbook(context.Background(), filepath.Join(dir, "out.xlsx"), namedPartitions(smallDataset(), "A"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.xlsx", entries[0].Name())
}

func TestWriteFilesSanitizesAndDeduplicates(t *testing.T) {
	dir := t.TempDir()

	res, err := WriteFiles(context.Background(), dir, namedPartitions(smallDataset(), "A/B", "A/B", "???", " 优秀 名单 "))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "AB.xlsx"),
		filepath.Join(dir, "AB_1.xlsx"),
		filepath.Join(dir, "result.xlsx"),
		filepath.Join(dir, "优秀 名单.xlsx"),
	}, res.Paths)
	assert.Equal(t, 4, res.Count())

	f, err := excelize.OpenFile(res.Paths[1])
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"姓名", "分数", "备注"}, rows[0])
	assert.Len(t, rows, 3)
}

func TestWriteFilesNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "AB.xlsx")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0644))

	res, err := WriteFiles(context.Background(), dir, namedPartitions(smallDataset(), "AB"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "AB_1.xlsx")}, res.Paths)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestWriteFilesCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	res, err := WriteFiles(context.Background(), dir, namedPartitions(smallDataset(), "x"))
	require.NoError(t, err)
	assert.FileExists(t, res.Paths[0])
}

func TestWritersRejectEmptyPartitionList(t *testing.T) {
	_, err := WriteWorkbook(context.Background(), filepath.Join(t.TempDir(), "x.xlsx"), nil)
	assert.True(t, errors.Is(err, ErrEmptyResult))

	_, err = WriteFiles(context.Background(), t.TempDir(), nil)
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A/B", "AB"},
		{"优秀名单", "优秀名单"},
		{"  report-2024_final  ", "report-2024_final"},
		{"a.b:c*d", "abcd"},
		{"Q½", "Q½"},
		{"x²", "x²"},
		{"Ⅻ班", "Ⅻ班"},
		{"///", "result"},
		{"   ", "result"},
		{"", "result"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.input), "SanitizeFileName(%q)", tt.input)
	}
}
