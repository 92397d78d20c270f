package exsplit

import (
	"strings"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// Evaluate returns one decision per value. The kind rule is applied first and
// negation is applied afterwards as a separate pass, so a value that cannot
// be coerced is false for a plain condition and true for a negated one.
func Evaluate(values []models.Scalar, c Condition) []bool {
	mask := make([]bool, len(values))
	for i, v := range values {
		mask[i] = c.matches(v)
	}
	if c.Negate {
		invert(mask)
	}
	return mask
}

func invert(mask []bool) {
	for i := range mask {
		mask[i] = !mask[i]
	}
}

func (c Condition) matches(v models.Scalar) bool {
	switch c.Kind {
	case KindNumeric:
		return c.matchNumeric(v)
	case KindText:
		return strings.Contains(v.String(), c.Text.Needle)
	case KindRegex:
		return c.matchRegex(v)
	default:
		return false
	}
}

// matchNumeric fails closed: missing and non-numeric values never match.
// NaN compares false under every operator.
func (c Condition) matchNumeric(v models.Scalar) bool {
	x, ok := v.Float()
	if !ok {
		return false
	}
	p := c.Numeric
	switch p.Operator {
	case OpGE:
		return x >= p.V1
	case OpGT:
		return x > p.V1
	case OpLE:
		return x <= p.V1
	case OpLT:
		return x < p.V1
	case OpEQ:
		return x == p.V1
	case OpRange:
		lo, hi := p.Bounds()
		return x >= lo && x <= hi
	default:
		return false
	}
}

// matchRegex ORs a match at the start of the string with a search anywhere.
// The pattern's own anchors still apply to both.
func (c Condition) matchRegex(v models.Scalar) bool {
	if c.search == nil || c.prefix == nil {
		return false
	}
	s := v.String()
	return c.prefix.MatchString(s) || c.search.MatchString(s)
}
