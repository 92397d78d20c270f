package models

// WorkbookInfo describes an input workbook without reading its data.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Format is the detected container format ("xlsx" or "xls").
	Format string `json:"format"`
	// Sheets lists the sheet names in workbook order.
	Sheets []string `json:"sheets"`
}
