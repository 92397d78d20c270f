package exsplit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind selects how a condition interprets its column.
type Kind string

const (
	// KindNumeric compares coerced numbers.
	KindNumeric Kind = "numeric"
	// KindText tests for a literal substring.
	KindText Kind = "text"
	// KindRegex tests a regular expression.
	KindRegex Kind = "regex"
)

// Operator is a numeric comparison.
type Operator string

const (
	OpGE    Operator = ">="
	OpGT    Operator = ">"
	OpLE    Operator = "<="
	OpLT    Operator = "<"
	OpEQ    Operator = "=="
	OpRange Operator = "range"
)

// ParseOperator maps user spellings to an Operator.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ">=", "ge", "gte":
		return OpGE, nil
	case ">", "gt":
		return OpGT, nil
	case "<=", "le", "lte":
		return OpLE, nil
	case "<", "lt":
		return OpLT, nil
	case "==", "=", "eq":
		return OpEQ, nil
	case "range", "between":
		return OpRange, nil
	default:
		return "", invalidInput("operator", fmt.Sprintf("unknown operator %q", s), nil)
	}
}

// NumericParams holds the operands of a numeric condition.
type NumericParams struct {
	Operator Operator
	V1       float64
	// V2 is set only for OpRange.
	V2 *float64
}

// Bounds returns the inclusive range of an OpRange condition, ordered.
func (p NumericParams) Bounds() (lo, hi float64) {
	if p.V2 == nil {
		return p.V1, p.V1
	}
	return math.Min(p.V1, *p.V2), math.Max(p.V1, *p.V2)
}

// TextParams holds the needle of a text condition.
type TextParams struct {
	Needle string
}

// RegexParams holds the pattern of a regex condition.
type RegexParams struct {
	Pattern string
}

// Condition is one filter over one column. Build it with NewNumeric,
// NewText or NewRegex; those validate every field.
type Condition struct {
	Column     string
	Kind       Kind
	Numeric    NumericParams
	Text       TextParams
	Regex      RegexParams
	Negate     bool
	OutputName string

	// search finds the pattern anywhere; prefix only matches at offset 0.
	search *regexp.Regexp
	prefix *regexp.Regexp
}

// NewNumeric creates a numeric condition. v2 is required for OpRange and
// ignored otherwise.
func NewNumeric(column string, op Operator, v1 float64, v2 *float64, negate bool, output string) (Condition, error) {
	c := Condition{Column: column, Kind: KindNumeric, Negate: negate, OutputName: output}
	if err := c.validateCommon(); err != nil {
		return Condition{}, err
	}
	switch op {
	case OpGE, OpGT, OpLE, OpLT, OpEQ:
		v2 = nil
	case OpRange:
		if v2 == nil {
			return Condition{}, invalidInput("value2", "range needs a second value", nil)
		}
		hi := *v2
		v2 = &hi
	default:
		return Condition{}, invalidInput("operator", fmt.Sprintf("unknown operator %q", op), nil)
	}
	c.Numeric = NumericParams{Operator: op, V1: v1, V2: v2}
	return c, nil
}

// NewNumericFromStrings parses the operands the way a form would submit them.
func NewNumericFromStrings(column, op, v1, v2 string, negate bool, output string) (Condition, error) {
	operator, err := ParseOperator(op)
	if err != nil {
		return Condition{}, err
	}
	first, err := parseOperand("value", v1)
	if err != nil {
		return Condition{}, err
	}
	var second *float64
	if operator == OpRange {
		v, err := parseOperand("value2", v2)
		if err != nil {
			return Condition{}, err
		}
		second = &v
	}
	return NewNumeric(column, operator, first, second, negate, output)
}

func parseOperand(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalidInput(field, "a number is required", nil)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidInput(field, fmt.Sprintf("%q is not a number", s), err)
	}
	return v, nil
}

// NewText creates a substring condition.
func NewText(column, needle string, negate bool, output string) (Condition, error) {
	c := Condition{Column: column, Kind: KindText, Negate: negate, OutputName: output}
	if err := c.validateCommon(); err != nil {
		return Condition{}, err
	}
	if needle == "" {
		return Condition{}, invalidInput("text", "text is required", nil)
	}
	c.Text = TextParams{Needle: needle}
	return c, nil
}

// NewRegex creates a regular expression condition. The pattern is compiled
// here so evaluation never fails on it.
func NewRegex(column, pattern string, negate bool, output string) (Condition, error) {
	c := Condition{Column: column, Kind: KindRegex, Negate: negate, OutputName: output}
	if err := c.validateCommon(); err != nil {
		return Condition{}, err
	}
	if pattern == "" {
		return Condition{}, invalidInput("pattern", "pattern is required", nil)
	}
	search, err := regexp.Compile(pattern)
	if err != nil {
		return Condition{}, invalidInput("pattern", "pattern does not compile", err)
	}
	prefix, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return Condition{}, invalidInput("pattern", "pattern does not compile", err)
	}
	c.Regex = RegexParams{Pattern: pattern}
	c.search = search
	c.prefix = prefix
	return c, nil
}

func (c *Condition) validateCommon() error {
	if strings.TrimSpace(c.Column) == "" {
		return invalidInput("column", "column is required", nil)
	}
	c.OutputName = strings.TrimSpace(c.OutputName)
	if c.OutputName == "" {
		return invalidInput("output", "output name is required", nil)
	}
	return nil
}

// Validate reports whether a Condition could have come from one of the
// constructors. Conditions assembled by hand fail it for regex kinds.
func (c Condition) Validate() error {
	if strings.TrimSpace(c.Column) == "" {
		return invalidInput("column", "column is required", nil)
	}
	if strings.TrimSpace(c.OutputName) == "" {
		return invalidInput("output", "output name is required", nil)
	}
	switch c.Kind {
	case KindNumeric:
		if c.Numeric.Operator == OpRange && c.Numeric.V2 == nil {
			return invalidInput("value2", "range needs a second value", nil)
		}
	case KindText:
		if c.Text.Needle == "" {
			return invalidInput("text", "text is required", nil)
		}
	case KindRegex:
		if c.search == nil || c.prefix == nil {
			return invalidInput("pattern", "pattern was not compiled", nil)
		}
	default:
		return invalidInput("kind", fmt.Sprintf("unknown kind %q", c.Kind), nil)
	}
	return nil
}

// Describe renders the condition for display, e.g. "x >= 90" or
// "[NOT] 60 <= x <= 90".
func (c Condition) Describe() string {
	var desc string
	switch c.Kind {
	case KindNumeric:
		if c.Numeric.Operator == OpRange && c.Numeric.V2 != nil {
			lo, hi := c.Numeric.Bounds()
			desc = fmt.Sprintf("%s <= x <= %s", formatFloat(lo), formatFloat(hi))
		} else {
			desc = fmt.Sprintf("x %s %s", c.Numeric.Operator, formatFloat(c.Numeric.V1))
		}
	case KindText:
		desc = fmt.Sprintf("contains '%s'", c.Text.Needle)
	case KindRegex:
		desc = fmt.Sprintf("regex: %s", c.Regex.Pattern)
	default:
		desc = string(c.Kind)
	}
	if c.Negate {
		desc = "[NOT] " + desc
	}
	return desc
}

// KindLabel returns the kind name, suffixed when negated.
func (c Condition) KindLabel() string {
	if c.Negate {
		return string(c.Kind) + " (not)"
	}
	return string(c.Kind)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
