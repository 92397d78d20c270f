package parser

import (
	"fmt"

	"github.com/yamitzky/xlrd-go/xlrd"
	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// OpenXLS opens a legacy BIFF workbook.
func OpenXLS(path string) (*xlrd.Book, error) {
	return xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{})
}

// ReadXLSHeader returns the column names ReadXLSSheet would give the sheet.
func ReadXLSHeader(book *xlrd.Book, sheetName string) ([]string, error) {
	ds, err := ReadXLSSheet(book, sheetName)
	if err != nil {
		return nil, err
	}
	return ds.Columns, nil
}

// ReadXLSSheet reads a legacy sheet into a Dataset with the same rules as ReadSheet.
func ReadXLSSheet(book *xlrd.Book, sheetName string) (*models.Dataset, error) {
	sheet, err := xlsSheet(book, sheetName)
	if err != nil {
		return nil, err
	}
	if sheet.NRows == 0 {
		return models.NewDataset(nil, nil), nil
	}

	grid := make([][]models.Scalar, sheet.NRows)
	text := make([][]string, sheet.NRows)
	for rowx := 0; rowx < sheet.NRows; rowx++ {
		grid[rowx] = make([]models.Scalar, sheet.NCols)
		text[rowx] = make([]string, sheet.NCols)
		for colx := 0; colx < sheet.NCols; colx++ {
			v := xlsScalar(sheet, rowx, colx)
			grid[rowx][colx] = v
			text[rowx][colx] = v.String()
		}
	}

	width := dataWidth(text)
	columns := NormalizeHeaders(text[0], width)

	var data [][]models.Scalar
	for _, row := range grid[1:] {
		if isEmptyRow(row) {
			continue
		}
		data = append(data, row)
	}

	return models.NewDataset(columns, data), nil
}

func xlsSheet(book *xlrd.Book, sheetName string) (*xlrd.Sheet, error) {
	for i, name := range book.SheetNames() {
		if name == sheetName {
			return book.SheetByIndex(i)
		}
	}
	return nil, errors.Errorf("sheet %q does not exist", sheetName)
}

// xlsScalar converts one BIFF cell. Booleans and error codes become text.
func xlsScalar(sheet *xlrd.Sheet, rowx, colx int) models.Scalar {
	value := sheet.RawCellValue(rowx, colx)
	switch sheet.RawCellType(rowx, colx) {
	case xlrd.XL_CELL_NUMBER:
		if v, ok := toFloat(value); ok {
			return models.Number(v)
		}
		return models.Text(fmt.Sprint(value))
	case xlrd.XL_CELL_TEXT:
		s := fmt.Sprint(value)
		if s == "" {
			return models.Missing()
		}
		return models.Text(s)
	case xlrd.XL_CELL_BOOLEAN:
		return models.Text(formatBool(value))
	case xlrd.XL_CELL_ERROR:
		return models.Text(formatError(value))
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return models.Missing()
	default:
		if value == nil {
			return models.Missing()
		}
		return models.Text(fmt.Sprint(value))
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func formatBool(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "TRUE"
		}
	case int:
		if v != 0 {
			return "TRUE"
		}
	}
	return "FALSE"
}

func formatError(value interface{}) string {
	switch v := value.(type) {
	case byte:
		if text, ok := xlrd.ErrorTextFromCode[v]; ok {
			return text
		}
	case int:
		if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
			return text
		}
	}
	return "#ERROR"
}

func isEmptyRow(row []models.Scalar) bool {
	for _, v := range row {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}
