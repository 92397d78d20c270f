// Package parser reads spreadsheet sheets into datasets.
package parser

import (
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// ReadHeader returns the column names ReadSheet would give the sheet. Data
// right of the last header cell adds "Unnamed: <i>" columns, so the whole
// sheet is scanned for its width.
func ReadHeader(f *excelize.File, sheetName string) ([]string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return NormalizeHeaders(rows[0], dataWidth(rows)), nil
}

// ReadSheet reads a sheet into a Dataset. Row 1 is the header; fully empty
// data rows are dropped.
func ReadSheet(f *excelize.File, sheetName string) (*models.Dataset, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return models.NewDataset(nil, nil), nil
	}

	width := dataWidth(rows)
	columns := NormalizeHeaders(rows[0], width)

	var data [][]models.Scalar
	for rowIdx, row := range rows[1:] {
		rowNum := rowIdx + 2 // 1-based, after the header
		cells := make([]models.Scalar, width)
		hasData := false

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = cellScalar(cellType, cellValue)
			hasData = true
		}

		if hasData {
			data = append(data, cells)
		}
	}

	return models.NewDataset(columns, data), nil
}

// cellScalar classifies a raw cell value. Strings, booleans, errors and
// formula results stored as strings stay text; everything else is a number
// when it parses as a finite one.
func cellScalar(cellType excelize.CellType, raw string) models.Scalar {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" || raw == "TRUE" || raw == "true" {
			return models.Text("TRUE")
		}
		return models.Text("FALSE")
	case excelize.CellTypeError:
		return models.Text(raw)
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns a Number for finite numeric input or a Text holding the string as read.
func parseValue(s string) models.Scalar {
	if s == "" {
		return models.Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Number(f)
	}
	return models.Text(s)
}
