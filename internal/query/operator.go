// Package query translates loosely-typed filter strings into the
// strongly-typed filter payloads the remote store expects.
package query

import (
	"fmt"
	"strings"
)

// Operator is a comparison operator in a filter string
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
)

// operatorOrder fixes detection priority: two-character operators must
// be tried before their one-character prefixes so "Count>=10" splits as
// (Count, >=, 10) rather than (Count, >, "=10").
var operatorOrder = []Operator{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}

// ParsedFilter is a filter string split into its parts
type ParsedFilter struct {
	Key      string
	Operator Operator
	Value    string
}

// ParseError reports a filter string with no recognizable operator
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"invalid filter %q: expected key<op>value with one of %s",
		e.Input, operatorList(),
	)
}

// ParseFilter splits a key<op>value string. Operators are tried in
// priority order and the first occurrence at index > 0 wins; a match at
// index 0 would leave an empty key and is rejected.
func ParseFilter(input string) (ParsedFilter, error) {
	for _, op := range operatorOrder {
		idx := strings.Index(input, string(op))
		if idx > 0 {
			return ParsedFilter{
				Key:      input[:idx],
				Operator: op,
				Value:    input[idx+len(op):],
			}, nil
		}
	}

	return ParsedFilter{}, &ParseError{Input: input}
}

func operatorList() string {
	parts := make([]string, len(operatorOrder))
	for i, op := range operatorOrder {
		parts[i] = string(op)
	}

	return strings.Join(parts, " ")
}
