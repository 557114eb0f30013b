package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ParsedFilter
	}{
		{
			name:     "equals",
			input:    "Status=Done",
			expected: ParsedFilter{Key: "Status", Operator: OpEqual, Value: "Done"},
		},
		{
			name:     "not equals",
			input:    "Status!=Done",
			expected: ParsedFilter{Key: "Status", Operator: OpNotEqual, Value: "Done"},
		},
		{
			name:     "greater than",
			input:    "Count>10",
			expected: ParsedFilter{Key: "Count", Operator: OpGreater, Value: "10"},
		},
		{
			name:     "less than",
			input:    "Count<10",
			expected: ParsedFilter{Key: "Count", Operator: OpLess, Value: "10"},
		},
		{
			name:     "greater than or equal wins over greater than",
			input:    "Count>=10",
			expected: ParsedFilter{Key: "Count", Operator: OpGreaterEqual, Value: "10"},
		},
		{
			name:     "less than or equal wins over less than",
			input:    "Count<=10",
			expected: ParsedFilter{Key: "Count", Operator: OpLessEqual, Value: "10"},
		},
		{
			name:     "not equals wins over equals",
			input:    "Count!=10",
			expected: ParsedFilter{Key: "Count", Operator: OpNotEqual, Value: "10"},
		},
		{
			name:     "empty value",
			input:    "Status=",
			expected: ParsedFilter{Key: "Status", Operator: OpEqual, Value: ""},
		},
		{
			name:     "value containing an operator",
			input:    "Name=a=b",
			expected: ParsedFilter{Key: "Name", Operator: OpEqual, Value: "a=b"},
		},
		{
			name:     "key with spaces",
			input:    "Due Date>=2024-01-01",
			expected: ParsedFilter{Key: "Due Date", Operator: OpGreaterEqual, Value: "2024-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseFilter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestParseFilterErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no operator", input: "Status"},
		{name: "empty input", input: ""},
		{name: "operator at index zero leaves empty key", input: "=Done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.input)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.input, parseErr.Input)
		})
	}
}
