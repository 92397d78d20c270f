// Package exsplit splits the rows of a spreadsheet into separate sheets or
// files according to an ordered list of column conditions.
package exsplit

import (
	"strings"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// Mode represents the output layout.
type Mode string

const (
	// ModeSingle writes every partition as a sheet of one workbook.
	ModeSingle Mode = "single"
	// ModeMulti writes every partition to its own workbook in a directory.
	ModeMulti Mode = "multi"
)

// ParseMode maps a user spelling to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "sheets", "one":
		return ModeSingle, nil
	case "multi", "files", "many":
		return ModeMulti, nil
	default:
		return "", invalidInput("mode", "must be single or multi", nil)
	}
}

const (
	// DefaultWorkbookName is the single-mode output when none is given.
	DefaultWorkbookName = "split_result.xlsx"
	// DefaultFileName replaces a multi-mode name that sanitizes to nothing.
	DefaultFileName = "result"
	// OutputExt is the extension of every written file.
	OutputExt = ".xlsx"
)

// Options configures output behavior.
type Options struct {
	// Mode specifies the output layout (single, multi).
	Mode Mode
	// Output is the workbook path in single mode and the directory in multi mode.
	// If empty, defaults to DefaultWorkbookName or the current directory.
	Output string
	// DryRun partitions without writing anything.
	DryRun bool
}

// DefaultOptions returns default output options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeSingle,
	}
}

// OutputPath returns the effective output path for the mode.
func (o Options) OutputPath() string {
	if o.Output != "" {
		return o.Output
	}
	if o.Mode == ModeMulti {
		return "."
	}
	return DefaultWorkbookName
}

// Request is one split run: the loaded sheet and the frozen condition list.
type Request struct {
	Dataset    *models.Dataset
	Conditions []Condition
	Options    Options
}
