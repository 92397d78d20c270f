package config

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/exsplit-go/pkg/exsplit"
)

// ParseCondition parses a one-line condition:
//
//	<column> [not] <op> <operand...> => <output>
//
// op is one of >= > <= < == between contains regex. between takes two
// numbers; contains and regex take the rest of the line, optionally quoted.
// A column name with spaces must be double-quoted.
//
//	分数 >= 90 => 优秀
//	分数 not between 60 90 => 非良好
//	"Last Name" contains Smith => smiths
//	学号 regex ^2023\d{3}$ => 学号
func ParseCondition(expr string) (exsplit.Condition, error) {
	idx := strings.LastIndex(expr, "=>")
	if idx < 0 {
		return exsplit.Condition{}, syntaxError("missing \"=> <output>\"")
	}
	lhs, output := expr[:idx], strings.TrimSpace(expr[idx+2:])
	output = unquote(output)

	column, rest, err := cutToken(lhs)
	if err != nil {
		return exsplit.Condition{}, err
	}

	negate := false
	if word, after := cutWord(rest); strings.EqualFold(word, "not") {
		negate = true
		rest = after
	}

	op, operand := cutWord(rest)
	operand = strings.TrimSpace(operand)
	if op == "" {
		return exsplit.Condition{}, syntaxError("missing operator")
	}

	switch strings.ToLower(op) {
	case "contains":
		return exsplit.NewText(column, unquote(operand), negate, output)
	case "regex", "matches":
		return exsplit.NewRegex(column, unquote(operand), negate, output)
	case "between", "range":
		bounds := strings.Fields(operand)
		if len(bounds) != 2 {
			return exsplit.Condition{}, syntaxError("between needs two numbers")
		}
		return exsplit.NewNumericFromStrings(column, "range", bounds[0], bounds[1], negate, output)
	default:
		return exsplit.NewNumericFromStrings(column, op, operand, "", negate, output)
	}
}

// ParseConditions parses each expression in order, stopping at the first error.
func ParseConditions(exprs []string) ([]exsplit.Condition, error) {
	conds := make([]exsplit.Condition, 0, len(exprs))
	for _, e := range exprs {
		c, err := ParseCondition(e)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func syntaxError(reason string) error {
	return &exsplit.InvalidInputError{Field: "expression", Reason: reason}
}

// cutToken returns the first token of s, honoring double quotes.
func cutToken(s string) (token, rest string, err error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", "", syntaxError("missing column")
	}
	if s[0] == '"' {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", syntaxError("unterminated quoted column")
		}
		token, err = strconv.Unquote(quoted)
		if err != nil {
			return "", "", syntaxError("malformed quoted column")
		}
		return token, s[len(quoted):], nil
	}
	token, rest = cutWord(s)
	return token, rest, nil
}

// cutWord splits off the first whitespace-delimited word.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// unquote strips one pair of surrounding double or single quotes. The
// content is taken literally so regex escapes survive.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
