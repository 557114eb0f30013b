// Package property converts between flat key=value strings and the
// remote store's typed property payloads.
package property

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/klynch/notionctl/internal/dates"
	"github.com/klynch/notionctl/internal/schema"
)

// ValidationError reports a raw value that fails the type's validation.
// Builders return it as a value; nothing in this package panics.
type ValidationError struct {
	Type    schema.PropertyType
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %s", e.Type, e.Value, e.Message)
}

// readOnlyTypes are populated by the remote store and cannot be written
var readOnlyTypes = map[schema.PropertyType]bool{
	schema.TypeFormula:        true,
	schema.TypeRollup:         true,
	schema.TypeCreatedTime:    true,
	schema.TypeLastEditedTime: true,
	schema.TypeCreatedBy:      true,
	schema.TypeLastEditedBy:   true,
}

// Build converts a raw string into the typed payload the remote schema
// expects for the property type. Validation happens here, before any
// network call that would consume the payload.
func Build(propType schema.PropertyType, raw string) (map[string]interface{}, error) {
	if readOnlyTypes[propType] {
		return nil, &ValidationError{
			Type:    propType,
			Value:   raw,
			Message: "property type is read-only",
		}
	}

	switch propType {
	case schema.TypeTitle:
		return map[string]interface{}{
			"title": []interface{}{textPayload(raw)},
		}, nil

	case schema.TypeRichText:
		return map[string]interface{}{
			"rich_text": []interface{}{textPayload(raw)},
		}, nil

	case schema.TypeNumber:
		number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &ValidationError{
				Type:    propType,
				Value:   raw,
				Message: "not a number",
			}
		}

		return map[string]interface{}{"number": number}, nil

	case schema.TypeSelect:
		return map[string]interface{}{
			"select": map[string]interface{}{"name": raw},
		}, nil

	case schema.TypeStatus:
		return map[string]interface{}{
			"status": map[string]interface{}{"name": raw},
		}, nil

	case schema.TypeMultiSelect:
		return map[string]interface{}{
			"multi_select": nameList(raw),
		}, nil

	case schema.TypeDate:
		resolved := dates.Resolve(raw)
		if err := validateDate(resolved); err != nil {
			return nil, &ValidationError{
				Type:    propType,
				Value:   raw,
				Message: "expected YYYY-MM-DD or an ISO-8601 datetime",
			}
		}

		return map[string]interface{}{
			"date": map[string]interface{}{"start": resolved},
		}, nil

	case schema.TypeCheckbox:
		return map[string]interface{}{"checkbox": truthy(raw)}, nil

	case schema.TypeURL:
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			return nil, &ValidationError{
				Type:    propType,
				Value:   raw,
				Message: "must start with http:// or https://",
			}
		}

		return map[string]interface{}{"url": raw}, nil

	case schema.TypeEmail:
		if !strings.Contains(raw, "@") {
			return nil, &ValidationError{
				Type:    propType,
				Value:   raw,
				Message: "must contain @",
			}
		}

		return map[string]interface{}{"email": raw}, nil

	case schema.TypePhoneNumber:
		return map[string]interface{}{"phone_number": raw}, nil

	case schema.TypePeople:
		return map[string]interface{}{"people": idList(raw)}, nil

	case schema.TypeRelation:
		return map[string]interface{}{"relation": idList(raw)}, nil

	case schema.TypeFiles:
		files := make([]interface{}, 0, 1)
		for _, u := range splitTrimmed(raw) {
			files = append(files, map[string]interface{}{
				"name":     u,
				"type":     "external",
				"external": map[string]interface{}{"url": u},
			})
		}

		return map[string]interface{}{"files": files}, nil

	default:
		// Escape hatch for undocumented property types: the raw string
		// passes through under the type key.
		return map[string]interface{}{string(propType): raw}, nil
	}
}

// BuildFromAssignment splits a key=value string, resolves the key against
// the schema, and builds the typed payload. The canonical property name
// is returned for use in the request's properties map.
func BuildFromAssignment(sm schema.Map, assignment string) (string, map[string]interface{}, error) {
	key, value, found := strings.Cut(assignment, "=")
	if !found || key == "" {
		return "", nil, fmt.Errorf("invalid property %q: expected key=value", assignment)
	}

	entry, ok := sm.Lookup(key)
	if !ok {
		return "", nil, fmt.Errorf(
			"unknown property %q (available: %s)",
			key, strings.Join(sm.Names(), ", "),
		)
	}

	payload, err := Build(entry.Type, value)
	if err != nil {
		return "", nil, err
	}

	return entry.Name, payload, nil
}

func textPayload(content string) map[string]interface{} {
	return map[string]interface{}{
		"text": map[string]interface{}{"content": content},
	}
}

// nameList splits a comma-separated value into {name} entries, trimming
// each segment and dropping empties from stray commas.
func nameList(raw string) []interface{} {
	segments := splitTrimmed(raw)

	names := make([]interface{}, 0, len(segments))
	for _, segment := range segments {
		names = append(names, map[string]interface{}{"name": segment})
	}

	return names
}

func idList(raw string) []interface{} {
	segments := splitTrimmed(raw)

	ids := make([]interface{}, 0, len(segments))
	for _, segment := range segments {
		ids = append(ids, map[string]interface{}{"id": segment})
	}

	return ids
}

func splitTrimmed(raw string) []string {
	parts := strings.Split(raw, ",")

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// validateDate accepts a date-only value or a full ISO-8601 datetime
// with offset or Z. Date-only values must be real calendar dates.
func validateDate(value string) error {
	if _, err := time.Parse(dates.DateLayout, value); err == nil {
		return nil
	}

	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return nil
	}

	return fmt.Errorf("invalid date %q", value)
}

// truthy coerces checkbox values permissively: "true", "1", and "yes"
// are true, everything else is false. There is no error state.
func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
