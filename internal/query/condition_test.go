package query

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klynch/notionctl/internal/dates"
	"github.com/klynch/notionctl/internal/schema"
)

func testSchema() schema.Map {
	return schema.Map{
		"name":     {Type: schema.TypeTitle, Name: "Name"},
		"notes":    {Type: schema.TypeRichText, Name: "Notes"},
		"status":   {Type: schema.TypeStatus, Name: "Status"},
		"priority": {Type: schema.TypeSelect, Name: "Priority"},
		"tags":     {Type: schema.TypeMultiSelect, Name: "Tags"},
		"count":    {Type: schema.TypeNumber, Name: "Count"},
		"done":     {Type: schema.TypeCheckbox, Name: "Done"},
		"due":      {Type: schema.TypeDate, Name: "Due"},
		"verify":   {Type: "verification", Name: "Verify"},
	}
}

func TestBuildCondition(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		expected Condition
	}{
		{
			name:     "title equals becomes contains",
			filter:   "Name=report",
			expected: Condition{Property: "Name", Type: "title", Semantic: "contains", Value: "report"},
		},
		{
			name:     "rich text not equals becomes does_not_contain",
			filter:   "Notes!=draft",
			expected: Condition{Property: "Notes", Type: "rich_text", Semantic: "does_not_contain", Value: "draft"},
		},
		{
			name:     "status equals",
			filter:   "Status=Done",
			expected: Condition{Property: "Status", Type: "status", Semantic: "equals", Value: "Done"},
		},
		{
			name:     "select not equals",
			filter:   "Priority!=Low",
			expected: Condition{Property: "Priority", Type: "select", Semantic: "does_not_equal", Value: "Low"},
		},
		{
			name:     "multi select equals becomes contains",
			filter:   "Tags=urgent",
			expected: Condition{Property: "Tags", Type: "multi_select", Semantic: "contains", Value: "urgent"},
		},
		{
			name:     "number greater than coerces value",
			filter:   "Count>10",
			expected: Condition{Property: "Count", Type: "number", Semantic: "greater_than", Value: float64(10)},
		},
		{
			name:     "number greater than or equal",
			filter:   "Count>=2.5",
			expected: Condition{Property: "Count", Type: "number", Semantic: "greater_than_or_equal_to", Value: 2.5},
		},
		{
			name:     "number less than or equal",
			filter:   "Count<=0",
			expected: Condition{Property: "Count", Type: "number", Semantic: "less_than_or_equal_to", Value: float64(0)},
		},
		{
			name:     "checkbox truthy value",
			filter:   "Done=true",
			expected: Condition{Property: "Done", Type: "checkbox", Semantic: "equals", Value: true},
		},
		{
			name:     "checkbox falsy value",
			filter:   "Done=no",
			expected: Condition{Property: "Done", Type: "checkbox", Semantic: "equals", Value: false},
		},
		{
			name:     "date after",
			filter:   "Due>2024-01-15",
			expected: Condition{Property: "Due", Type: "date", Semantic: "after", Value: "2024-01-15"},
		},
		{
			name:     "date on or before",
			filter:   "Due<=2024-01-15",
			expected: Condition{Property: "Due", Type: "date", Semantic: "on_or_before", Value: "2024-01-15"},
		},
		{
			name:     "case insensitive key resolves canonical name",
			filter:   "status=Done",
			expected: Condition{Property: "Status", Type: "status", Semantic: "equals", Value: "Done"},
		},
		{
			name:     "unknown type passes through with generic semantics",
			filter:   "Verify=approved",
			expected: Condition{Property: "Verify", Type: "verification", Semantic: "equals", Value: "approved"},
		},
	}

	sm := testSchema()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			condition, err := BuildCondition(sm, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, condition)
		})
	}
}

func TestBuildConditionRelativeDate(t *testing.T) {
	condition, err := BuildCondition(testSchema(), "Due>=today")
	require.NoError(t, err)

	assert.Equal(t, "on_or_after", condition.Semantic)
	assert.Equal(t, time.Now().Format(dates.DateLayout), condition.Value)
}

func TestBuildConditionErrors(t *testing.T) {
	sm := testSchema()

	t.Run("unknown property lists available names", func(t *testing.T) {
		_, err := BuildCondition(sm, "Missing=1")

		var unknownErr *UnknownPropertyError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "Missing", unknownErr.Key)
		assert.Contains(t, unknownErr.Available, "Status")
		assert.Contains(t, unknownErr.Available, "Count")
	})

	t.Run("unsupported operator for text", func(t *testing.T) {
		_, err := BuildCondition(sm, "Name>abc")

		var opErr *UnsupportedOperatorError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, OpGreater, opErr.Operator)
		assert.Equal(t, schema.TypeTitle, opErr.Type)
	})

	t.Run("unsupported operator for status", func(t *testing.T) {
		_, err := BuildCondition(sm, "Status<=Done")

		var opErr *UnsupportedOperatorError
		require.ErrorAs(t, err, &opErr)
	})

	t.Run("non-numeric number value", func(t *testing.T) {
		_, err := BuildCondition(sm, "Count>abc")

		var valueErr *InvalidValueError
		require.ErrorAs(t, err, &valueErr)
		assert.Equal(t, "abc", valueErr.Value)
		assert.Equal(t, schema.TypeNumber, valueErr.Type)
	})

	t.Run("unparseable filter string", func(t *testing.T) {
		_, err := BuildCondition(sm, "nonsense")

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestBuild(t *testing.T) {
	sm := testSchema()

	t.Run("single filter marshals as bare condition", func(t *testing.T) {
		filter, err := Build(sm, []string{"Status=Done"})
		require.NoError(t, err)
		require.Len(t, filter.Conditions(), 1)

		data, err := json.Marshal(filter)
		require.NoError(t, err)
		assert.JSONEq(t, `{"property":"Status","status":{"equals":"Done"}}`, string(data))
	})

	t.Run("multiple filters marshal as AND container in input order", func(t *testing.T) {
		filter, err := Build(sm, []string{"Status=Done", "Count>10"})
		require.NoError(t, err)
		require.Len(t, filter.Conditions(), 2)
		assert.Equal(t, "Status", filter.Conditions()[0].Property)
		assert.Equal(t, "Count", filter.Conditions()[1].Property)

		data, err := json.Marshal(filter)
		require.NoError(t, err)
		assert.JSONEq(t, `{"and":[
			{"property":"Status","status":{"equals":"Done"}},
			{"property":"Count","number":{"greater_than":10}}
		]}`, string(data))
	})

	t.Run("first failure aborts the build", func(t *testing.T) {
		_, err := Build(sm, []string{"Missing=1", "Status=Done"})

		var unknownErr *UnknownPropertyError
		require.ErrorAs(t, err, &unknownErr)
	})

	t.Run("no filters is an error", func(t *testing.T) {
		_, err := Build(sm, nil)
		require.Error(t, err)
	})
}
