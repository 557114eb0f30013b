package query

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/klynch/notionctl/internal/dates"
	"github.com/klynch/notionctl/internal/schema"
)

// Condition is a single-field filter in the remote store's shape:
// {"property": name, "<type>": {"<semantic>": value}}. Conditions are
// built here, never constructed directly by callers.
type Condition struct {
	Property string
	Type     string
	Semantic string
	Value    interface{}
}

// MarshalJSON emits the remote filter condition object
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"property": c.Property,
		c.Type:     map[string]interface{}{c.Semantic: c.Value},
	})
}

// Filter is one condition or an AND-conjunction of several, in input order
type Filter struct {
	conditions []Condition
}

// Conditions returns the conjunction's conditions in input order
func (f *Filter) Conditions() []Condition {
	return f.conditions
}

// MarshalJSON emits a bare condition for a single input or an "and"
// container for multiple
func (f *Filter) MarshalJSON() ([]byte, error) {
	if len(f.conditions) == 1 {
		return json.Marshal(f.conditions[0])
	}

	return json.Marshal(map[string]interface{}{"and": f.conditions})
}

// UnknownPropertyError reports a filter key absent from the schema,
// carrying the valid property names for the caller's message.
type UnknownPropertyError struct {
	Key       string
	Available []string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf(
		"unknown property %q (available: %s)",
		e.Key, strings.Join(e.Available, ", "),
	)
}

// UnsupportedOperatorError reports an operator that has no semantics for
// the property's type
type UnsupportedOperatorError struct {
	Operator Operator
	Type     schema.PropertyType
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q is not supported for %s properties", e.Operator, e.Type)
}

// InvalidValueError reports a filter value that cannot be coerced to the
// property's type
type InvalidValueError struct {
	Value string
	Type  schema.PropertyType
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Type, e.Value)
}

// BuildCondition parses one key<op>value string and combines it with the
// schema into a remote filter condition.
func BuildCondition(sm schema.Map, filter string) (Condition, error) {
	parsed, err := ParseFilter(filter)
	if err != nil {
		return Condition{}, err
	}

	entry, ok := sm.Lookup(parsed.Key)
	if !ok {
		return Condition{}, &UnknownPropertyError{
			Key:       parsed.Key,
			Available: sm.Names(),
		}
	}

	return conditionFor(entry, parsed)
}

// Build combines filter strings into a compound filter. A single input
// delegates to BuildCondition; multiple inputs are built independently
// in input order and wrapped in an AND container. The first failure
// aborts the whole build.
func Build(sm schema.Map, filters []string) (*Filter, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("no filters provided")
	}

	conditions := make([]Condition, 0, len(filters))

	for _, filter := range filters {
		condition, err := BuildCondition(sm, filter)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, condition)
	}

	return &Filter{conditions: conditions}, nil
}

// conditionFor selects the condition shape for a type and operator,
// coercing the value where the type requires it.
func conditionFor(entry schema.Entry, parsed ParsedFilter) (Condition, error) {
	condition := Condition{
		Property: entry.Name,
		Type:     string(entry.Type),
	}

	value := parsed.Value
	if entry.Type == schema.TypeDate {
		value = dates.Resolve(value)
	}

	switch entry.Type {
	case schema.TypeTitle, schema.TypeRichText:
		semantic, err := textSemantic(entry, parsed.Operator)
		if err != nil {
			return Condition{}, err
		}

		condition.Semantic = semantic
		condition.Value = value

	case schema.TypeSelect, schema.TypeStatus:
		semantic, err := equalitySemantic(entry, parsed.Operator)
		if err != nil {
			return Condition{}, err
		}

		condition.Semantic = semantic
		condition.Value = value

	case schema.TypeMultiSelect:
		semantic, err := containsSemantic(entry, parsed.Operator)
		if err != nil {
			return Condition{}, err
		}

		condition.Semantic = semantic
		condition.Value = value

	case schema.TypeNumber:
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Condition{}, &InvalidValueError{Value: parsed.Value, Type: entry.Type}
		}

		condition.Semantic = numberSemantic(parsed.Operator)
		condition.Value = number

	case schema.TypeCheckbox:
		semantic, err := equalitySemantic(entry, parsed.Operator)
		if err != nil {
			return Condition{}, err
		}

		condition.Semantic = semantic
		condition.Value = truthy(value)

	case schema.TypeDate:
		condition.Semantic = dateSemantic(parsed.Operator)
		condition.Value = value

	default:
		// Unknown types pass through with the generic semantics so
		// undocumented property types remain filterable.
		condition.Semantic = numberSemantic(parsed.Operator)
		condition.Value = value
	}

	return condition, nil
}

// textSemantic maps operators for title and rich_text properties
func textSemantic(entry schema.Entry, op Operator) (string, error) {
	switch op {
	case OpEqual:
		return "contains", nil
	case OpNotEqual:
		return "does_not_contain", nil
	default:
		return "", &UnsupportedOperatorError{Operator: op, Type: entry.Type}
	}
}

// containsSemantic maps operators for multi_select properties
func containsSemantic(entry schema.Entry, op Operator) (string, error) {
	switch op {
	case OpEqual:
		return "contains", nil
	case OpNotEqual:
		return "does_not_contain", nil
	default:
		return "", &UnsupportedOperatorError{Operator: op, Type: entry.Type}
	}
}

// equalitySemantic maps operators for types that only support equality
func equalitySemantic(entry schema.Entry, op Operator) (string, error) {
	switch op {
	case OpEqual:
		return "equals", nil
	case OpNotEqual:
		return "does_not_equal", nil
	default:
		return "", &UnsupportedOperatorError{Operator: op, Type: entry.Type}
	}
}

// numberSemantic maps every operator for number properties; it doubles
// as the generic passthrough for unknown types.
func numberSemantic(op Operator) string {
	switch op {
	case OpNotEqual:
		return "does_not_equal"
	case OpGreater:
		return "greater_than"
	case OpLess:
		return "less_than"
	case OpGreaterEqual:
		return "greater_than_or_equal_to"
	case OpLessEqual:
		return "less_than_or_equal_to"
	default:
		return "equals"
	}
}

// dateSemantic maps every operator for date properties
func dateSemantic(op Operator) string {
	switch op {
	case OpNotEqual:
		return "does_not_equal"
	case OpGreater:
		return "after"
	case OpLess:
		return "before"
	case OpGreaterEqual:
		return "on_or_after"
	case OpLessEqual:
		return "on_or_before"
	default:
		return "equals"
	}
}

// truthy coerces checkbox filter values: "true", "1", and "yes" are
// true, everything else is false.
func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
