package exsplit

import (
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
	"github.com/ukaji3/exsplit-go/pkg/exsplit/parser"
)

const (
	formatXLSX = "xlsx"
	formatXLS  = "xls"
)

// detectFormat picks a reader from the file extension.
func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatXLSX, nil
	case ".xls":
		return formatXLS, nil
	default:
		return "", errors.Errorf("unsupported file type %q (expected .xlsx or .xls)", filepath.Ext(path))
	}
}

// Inspect returns the workbook's sheet names without reading any sheet.
func Inspect(path string) (*models.WorkbookInfo, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, NewFileLoadError(path, "", err)
	}

	var sheets []string
	switch format {
	case formatXLS:
		book, err := parser.OpenXLS(path)
		if err != nil {
			return nil, NewFileLoadError(path, "", err)
		}
		sheets = book.SheetNames()
	default:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, NewFileLoadError(path, "", err)
		}
		defer f.Close()
		sheets = f.GetSheetList()
	}

	return &models.WorkbookInfo{
		BookName: filepath.Base(path),
		Format:   format,
		Sheets:   sheets,
	}, nil
}

// SheetNames lists the sheets of a workbook in order.
func SheetNames(path string) ([]string, error) {
	info, err := Inspect(path)
	if err != nil {
		return nil, err
	}
	return info.Sheets, nil
}

// Headers reads only the header row of a sheet. An empty sheet name selects
// the first sheet.
func Headers(path, sheet string) ([]string, error) {
	var headers []string
	err := withSheet(path, sheet,
		func(f *excelize.File, name string) (err error) {
			headers, err = parser.ReadHeader(f, name)
			return err
		},
		func(path, name string) (err error) {
			book, err := parser.OpenXLS(path)
			if err != nil {
				return err
			}
			headers, err = parser.ReadXLSHeader(book, name)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return headers, nil
}

// Load reads a whole sheet into a Dataset. An empty sheet name selects the
// first sheet.
func Load(path, sheet string) (*models.Dataset, error) {
	var ds *models.Dataset
	err := withSheet(path, sheet,
		func(f *excelize.File, name string) (err error) {
			ds, err = parser.ReadSheet(f, name)
			return err
		},
		func(path, name string) (err error) {
			book, err := parser.OpenXLS(path)
			if err != nil {
				return err
			}
			ds, err = parser.ReadXLSSheet(book, name)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// withSheet resolves the sheet name and dispatches to the reader for the
// file's format. Every failure comes back as a *FileLoadError.
func withSheet(path, sheet string, xlsx func(*excelize.File, string) error, xls func(string, string) error) error {
	info, err := Inspect(path)
	if err != nil {
		return err
	}

	name, err := resolveSheet(info.Sheets, sheet)
	if err != nil {
		return NewFileLoadError(path, sheet, err)
	}

	switch info.Format {
	case formatXLS:
		err = xls(path, name)
	default:
		var f *excelize.File
		f, err = excelize.OpenFile(path)
		if err != nil {
			return NewFileLoadError(path, name, err)
		}
		defer f.Close()
		err = xlsx(f, name)
	}
	if err != nil {
		return NewFileLoadError(path, name, err)
	}
	return nil
}

func resolveSheet(sheets []string, sheet string) (string, error) {
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	if sheet == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == sheet {
			return s, nil
		}
	}
	return "", errors.Errorf("sheet %q does not exist", sheet)
}
