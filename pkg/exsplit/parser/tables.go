package parser

import (
	"fmt"
	"strings"
)

// dataWidth returns the number of columns needed to hold every non-empty
// cell of rows, i.e. one past the right-most used column.
func dataWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		for colIdx := len(row) - 1; colIdx >= width; colIdx-- {
			if row[colIdx] != "" {
				width = colIdx + 1
				break
			}
		}
	}
	return width
}

// NormalizeHeaders turns a raw header row into width unique column names.
// Blank headers become "Unnamed: <i>" and repeats of a name get ".1", ".2", ...
func NormalizeHeaders(raw []string, width int) []string {
	if width < len(raw) {
		width = len(raw)
	}
	headers := make([]string, width)
	seen := make(map[string]int, width)
	used := make(map[string]bool, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		base := name
		for used[name] {
			seen[base]++
			name = fmt.Sprintf("%s.%d", base, seen[base])
		}
		used[name] = true
		headers[i] = name
	}

	return headers
}
