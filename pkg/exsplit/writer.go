package exsplit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// maxSheetNameLen is Excel's sheet name limit, in characters.
const maxSheetNameLen = 31

// WriteResult reports what a writer produced.
type WriteResult struct {
	// Paths lists written files in order.
	Paths []string `json:"paths"`
	// Sheets lists sheet names in order (single mode only).
	Sheets []string `json:"sheets,omitempty"`
}

// Count returns the number of sheets (single mode) or files (multi mode) written.
func (r WriteResult) Count() int {
	if len(r.Sheets) > 0 {
		return len(r.Sheets)
	}
	return len(r.Paths)
}

// WriteWorkbook writes every partition as one sheet of a single workbook at path.
// A repeated sheet name gets "_<n>" appended, n being the number of sheets
// already written. The workbook only appears at path once it is complete.
func WriteWorkbook(ctx context.Context, path string, parts []models.Partition) (*WriteResult, error) {
	if len(parts) == 0 {
		return nil, errors.WithStack(ErrEmptyResult)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	var written []string
	for i, p := range parts {
		name := uniqueSheetName(sheetName(p.Name), written)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, NewWriteError(path, errors.Errorf("naming sheet %q: %w", name, err))
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, NewWriteError(path, errors.Errorf("adding sheet %q: %w", name, err))
		}
		if err := writeRows(f, name, p.Data); err != nil {
			return nil, NewWriteError(path, errors.Errorf("filling sheet %q: %w", name, err))
		}
		written = append(written, name)
	}

	if err := saveAtomic(f, path); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Strs("sheets", written).
		Msg("workbook written")

	return &WriteResult{Paths: []string{path}, Sheets: written}, nil
}

// WriteFiles writes every partition to its own workbook in dir. Names are
// sanitized, and an existing file is never overwritten: "_1", "_2", ... are
// tried until a free path is found. Files written before a failure are kept.
func WriteFiles(ctx context.Context, dir string, parts []models.Partition) (*WriteResult, error) {
	if len(parts) == 0 {
		return nil, errors.WithStack(ErrEmptyResult)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, NewWriteError(dir, err)
	}

	log := zerolog.Ctx(ctx)
	result := &WriteResult{}
	for _, p := range parts {
		path, err := availablePath(dir, SanitizeFileName(p.Name), OutputExt)
		if err != nil {
			return result, NewWriteError(dir, err)
		}

		if err := writeSingleSheet(path, p.Data); err != nil {
			return result, err
		}

		log.Info().
			Str("path", path).
			Int("rows", p.Rows()).
			Msg("file written")
		result.Paths = append(result.Paths, path)
	}

	return result, nil
}

func writeSingleSheet(path string, ds *models.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRows(f, f.GetSheetName(0), ds); err != nil {
		return NewWriteError(path, err)
	}
	return saveAtomic(f, path)
}

// writeRows puts the header in row 1 and the data below it.
func writeRows(f *excelize.File, sheet string, ds *models.Dataset) error {
	header := make([]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range ds.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v.Value()
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// saveAtomic writes f to a temp file next to path and renames it into place.
func saveAtomic(f *excelize.File, path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".exsplit-*"+OutputExt)
	if err != nil {
		return NewWriteError(path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(0644); err != nil {
		tmp.Close()
		return NewWriteError(path, err)
	}
	if _, err = f.WriteTo(tmp); err != nil {
		tmp.Close()
		return NewWriteError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return NewWriteError(path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return NewWriteError(path, err)
	}
	return nil
}

// sheetName makes name acceptable to Excel: no : \ / ? * [ ], no leading
// or trailing apostrophe, at most 31 characters, never empty.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	name = truncateRunes(name, maxSheetNameLen)
	if strings.TrimSpace(name) == "" {
		return "Sheet"
	}
	return name
}

// uniqueSheetName appends "_<len(taken)>" to a name already in use. Should
// that also be taken, the counter keeps going until a free name turns up.
func uniqueSheetName(name string, taken []string) string {
	if !containsFold(taken, name) {
		return name
	}
	for n := len(taken); ; n++ {
		suffix := fmt.Sprintf("_%d", n)
		candidate := truncateRunes(name, maxSheetNameLen-utf8.RuneCountInString(suffix)) + suffix
		if !containsFold(taken, candidate) {
			return candidate
		}
	}
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// SanitizeFileName keeps letters, numbers, spaces, hyphens and underscores,
// trims the result and falls back to DefaultFileName when nothing is left.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	if safe == "" {
		return DefaultFileName
	}
	return safe
}

// availablePath returns dir/base+ext, or the first dir/base_<n>+ext that does
// not exist yet.
func availablePath(dir, base, ext string) (string, error) {
	path := filepath.Join(dir, base+ext)
	for counter := 1; ; counter++ {
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
}
