// Package schema resolves a data source's property schema into a
// case-insensitive lookup table used by the filter and property builders.
package schema

import (
	"context"
	"sort"
	"strings"

	"github.com/klynch/notionctl/internal/notion"
)

// PropertyType is a property's declared type on a data source. The set
// is open: undeclared types flow through the builders unchanged.
type PropertyType string

const (
	TypeTitle          PropertyType = "title"
	TypeRichText       PropertyType = "rich_text"
	TypeNumber         PropertyType = "number"
	TypeSelect         PropertyType = "select"
	TypeMultiSelect    PropertyType = "multi_select"
	TypeDate           PropertyType = "date"
	TypeCheckbox       PropertyType = "checkbox"
	TypeURL            PropertyType = "url"
	TypeEmail          PropertyType = "email"
	TypePhoneNumber    PropertyType = "phone_number"
	TypeStatus         PropertyType = "status"
	TypeFormula        PropertyType = "formula"
	TypeRelation       PropertyType = "relation"
	TypeRollup         PropertyType = "rollup"
	TypePeople         PropertyType = "people"
	TypeFiles          PropertyType = "files"
	TypeCreatedTime    PropertyType = "created_time"
	TypeLastEditedTime PropertyType = "last_edited_time"
	TypeCreatedBy      PropertyType = "created_by"
	TypeLastEditedBy   PropertyType = "last_edited_by"
)

// Entry records a property's type and canonical display name
type Entry struct {
	Type PropertyType
	Name string
}

// Map is the property schema keyed by lowercased display name. When two
// names collide after lowercasing, the later declaration wins.
type Map map[string]Entry

// FromDataSource normalizes a data source's declared properties
func FromDataSource(ds *notion.DataSource) Map {
	m := make(Map, len(ds.Properties))

	for name, prop := range ds.Properties {
		canonical := prop.Name
		if canonical == "" {
			canonical = name
		}

		m[strings.ToLower(canonical)] = Entry{
			Type: PropertyType(prop.Type),
			Name: canonical,
		}
	}

	return m
}

// Resolve fetches and normalizes the schema for a data source. The map
// is built fresh on every call; any caching lives in the client layer.
func Resolve(ctx context.Context, client notion.Client, dataSourceID string) (Map, error) {
	ds, err := client.RetrieveDataSource(ctx, dataSourceID)
	if err != nil {
		return nil, err
	}

	return FromDataSource(ds), nil
}

// Lookup finds a property by display name, case-insensitively
func (m Map) Lookup(key string) (Entry, bool) {
	entry, ok := m[strings.ToLower(key)]
	return entry, ok
}

// Names returns the canonical display names in sorted order, for use in
// unknown-property error messages.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for _, entry := range m {
		names = append(names, entry.Name)
	}

	sort.Strings(names)

	return names
}
