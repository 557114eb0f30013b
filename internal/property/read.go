package property

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/klynch/notionctl/internal/notion"
)

const relationIDPrefixLen = 8

// Read converts a typed property value into a flat, human-readable
// string. It is total: a nil or empty property reads as "".
func Read(value *notion.PropertyValue) string {
	if value == nil {
		return ""
	}

	switch value.Type {
	case "title":
		return notion.PlainText(value.Title)

	case "rich_text":
		return notion.PlainText(value.RichText)

	case "number":
		if value.Number == nil {
			return ""
		}

		return strconv.FormatFloat(*value.Number, 'f', -1, 64)

	case "select":
		if value.Select == nil {
			return ""
		}

		return value.Select.Name

	case "status":
		if value.Status == nil {
			return ""
		}

		return value.Status.Name

	case "multi_select":
		names := make([]string, 0, len(value.MultiSelect))
		for _, option := range value.MultiSelect {
			names = append(names, option.Name)
		}

		return strings.Join(names, ", ")

	case "date":
		return readDate(value.Date)

	case "checkbox":
		if value.Checkbox != nil && *value.Checkbox {
			return "✓"
		}

		return "✗"

	case "url":
		return deref(value.URL)

	case "email":
		return deref(value.Email)

	case "phone_number":
		return deref(value.PhoneNumber)

	case "formula":
		return readFormula(value.Formula)

	case "relation":
		return readRelation(value.Relation)

	case "rollup":
		return readRollup(value.Rollup)

	case "people":
		names := make([]string, 0, len(value.People))
		for _, person := range value.People {
			if person.Name != "" {
				names = append(names, person.Name)
			} else {
				names = append(names, person.ID)
			}
		}

		return strings.Join(names, ", ")

	case "files":
		names := make([]string, 0, len(value.Files))
		for _, file := range value.Files {
			names = append(names, readFile(file))
		}

		return strings.Join(names, ", ")

	case "created_time":
		return deref(value.CreatedTime)

	case "last_edited_time":
		return deref(value.LastEditedTime)

	case "created_by":
		return readUser(value.CreatedBy)

	case "last_edited_by":
		return readUser(value.LastEditedBy)

	default:
		return readUnknown(value)
	}
}

func readDate(date *notion.DateValue) string {
	if date == nil {
		return ""
	}

	if date.End != "" {
		return date.Start + " → " + date.End
	}

	return date.Start
}

func readFormula(formula *notion.FormulaValue) string {
	if formula == nil {
		return ""
	}

	switch formula.Type {
	case "string":
		return deref(formula.String)
	case "number":
		if formula.Number == nil {
			return ""
		}

		return strconv.FormatFloat(*formula.Number, 'f', -1, 64)
	case "boolean":
		if formula.Boolean != nil && *formula.Boolean {
			return "✓"
		}

		return "✗"
	case "date":
		return readDate(formula.Date)
	default:
		return ""
	}
}

// readRelation summarizes linked pages without resolving their titles;
// title resolution requires fetching the linked pages and belongs to
// the caller.
func readRelation(relations []notion.PageReference) string {
	switch len(relations) {
	case 0:
		return ""
	case 1:
		id := relations[0].ID
		if len(id) > relationIDPrefixLen {
			id = id[:relationIDPrefixLen]
		}

		return "→ " + id + "…"
	default:
		return fmt.Sprintf("→ %d linked", len(relations))
	}
}

func readRollup(rollup *notion.RollupValue) string {
	if rollup == nil {
		return ""
	}

	switch rollup.Type {
	case "number":
		if rollup.Number == nil {
			return ""
		}

		return strconv.FormatFloat(*rollup.Number, 'f', -1, 64)
	case "date":
		return readDate(rollup.Date)
	case "array":
		parts := make([]string, 0, len(rollup.Array))
		for i := range rollup.Array {
			parts = append(parts, Read(&rollup.Array[i]))
		}

		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func readFile(file notion.File) string {
	if file.Name != "" {
		return file.Name
	}

	if file.File != nil {
		return file.File.URL
	}

	if file.External != nil {
		return file.External.URL
	}

	return ""
}

func readUser(user *notion.User) string {
	if user == nil {
		return ""
	}

	if user.Name != "" {
		return user.Name
	}

	return user.ID
}

// readUnknown falls back to the raw JSON of the type-named field so
// undocumented property types still display something inspectable.
func readUnknown(value *notion.PropertyValue) string {
	raw, ok := value.RawField(value.Type)
	if !ok {
		return ""
	}

	return string(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
