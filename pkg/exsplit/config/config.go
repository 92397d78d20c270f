// Package config loads split conditions from YAML, JSON or HCL files and from
// one-line condition expressions.
package config

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit"
)

// NumericSpec is the numeric part of a condition entry.
type NumericSpec struct {
	Op     string   `yaml:"op" json:"op"`
	Value  *float64 `yaml:"value" json:"value"`
	Value2 *float64 `yaml:"value2,omitempty" json:"value2,omitempty"`
}

// ConditionSpec is one condition entry as written in a file. Exactly one of
// Numeric, Contains and Regex must be set.
type ConditionSpec struct {
	Column   string       `yaml:"column" json:"column"`
	Numeric  *NumericSpec `yaml:"numeric,omitempty" json:"numeric,omitempty"`
	Contains *string      `yaml:"contains,omitempty" json:"contains,omitempty"`
	Regex    *string      `yaml:"regex,omitempty" json:"regex,omitempty"`
	Negate   bool         `yaml:"negate,omitempty" json:"negate,omitempty"`
	Output   string       `yaml:"output" json:"output"`
}

// Spec is the on-disk shape of a condition file.
type Spec struct {
	Sheet      string          `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	Mode       string          `yaml:"mode,omitempty" json:"mode,omitempty"`
	Output     string          `yaml:"output,omitempty" json:"output,omitempty"`
	Conditions []ConditionSpec `yaml:"conditions" json:"conditions"`
}

// File is a loaded and validated condition file.
type File struct {
	// Path is where the file was read from.
	Path string
	// Sheet is the sheet to split; empty means the first one.
	Sheet string
	// Mode is empty when the file does not choose one.
	Mode exsplit.Mode
	// Output overrides the default output location when set.
	Output string
	// Conditions are in file order.
	Conditions []exsplit.Condition
}

// Build validates the entry and turns it into a Condition.
func (c ConditionSpec) Build() (exsplit.Condition, error) {
	set := 0
	for _, present := range []bool{c.Numeric != nil, c.Contains != nil, c.Regex != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return exsplit.Condition{}, &exsplit.InvalidInputError{
			Field:  "kind",
			Reason: "exactly one of numeric, contains or regex is required",
		}
	}

	switch {
	case c.Numeric != nil:
		op, err := exsplit.ParseOperator(c.Numeric.Op)
		if err != nil {
			return exsplit.Condition{}, err
		}
		if c.Numeric.Value == nil {
			return exsplit.Condition{}, &exsplit.InvalidInputError{Field: "value", Reason: "a number is required"}
		}
		return exsplit.NewNumeric(c.Column, op, *c.Numeric.Value, c.Numeric.Value2, c.Negate, c.Output)
	case c.Contains != nil:
		return exsplit.NewText(c.Column, *c.Contains, c.Negate, c.Output)
	default:
		return exsplit.NewRegex(c.Column, *c.Regex, c.Negate, c.Output)
	}
}

// Build validates every entry. Errors name the failing entry by position.
func (s *Spec) Build() (*File, error) {
	file := &File{
		Sheet:  s.Sheet,
		Output: s.Output,
	}
	if s.Mode != "" {
		mode, err := exsplit.ParseMode(s.Mode)
		if err != nil {
			return nil, err
		}
		file.Mode = mode
	}

	for i, spec := range s.Conditions {
		cond, err := spec.Build()
		if err != nil {
			return nil, errors.Errorf("condition %d (%s): %w", i+1, describeSpec(spec), err)
		}
		file.Conditions = append(file.Conditions, cond)
	}
	return file, nil
}

func describeSpec(c ConditionSpec) string {
	parts := []string{}
	if c.Column != "" {
		parts = append(parts, "column "+strconv.Quote(c.Column))
	}
	if c.Output != "" {
		parts = append(parts, "output "+strconv.Quote(c.Output))
	}
	if len(parts) == 0 {
		return "unnamed"
	}
	return strings.Join(parts, ", ")
}
