package testutil

import (
	"fmt"

	"github.com/klynch/notionctl/internal/notion"
)

// PageOption is a functional option for configuring test pages
type PageOption func(*notion.Page)

// WithID sets the page ID
func WithID(id string) PageOption {
	return func(p *notion.Page) {
		p.ID = id
	}
}

// WithTitle sets the page's title property
func WithTitle(title string) PageOption {
	return func(p *notion.Page) {
		p.Properties["Name"] = notion.PropertyValue{
			Type:  "title",
			Title: []notion.RichText{notion.NewText(title)},
		}
	}
}

// WithProperty sets an arbitrary property value
func WithProperty(name string, value notion.PropertyValue) PageOption {
	return func(p *notion.Page) {
		p.Properties[name] = value
	}
}

// WithParent sets the page parent to a data source
func WithParent(dataSourceID string) PageOption {
	return func(p *notion.Page) {
		p.Parent = &notion.Parent{Type: "data_source_id", DataSourceID: dataSourceID}
	}
}

// NewPage creates a test page with sensible defaults
func NewPage(opts ...PageOption) notion.Page {
	page := notion.Page{
		Object:     "page",
		ID:         "00000000-0000-0000-0000-000000000001",
		Properties: map[string]notion.PropertyValue{},
	}

	for _, opt := range opts {
		opt(&page)
	}

	return page
}

// NewPages creates n test pages with distinct IDs and titles
func NewPages(n int) []notion.Page {
	pages := make([]notion.Page, 0, n)

	for i := 0; i < n; i++ {
		pages = append(pages, NewPage(
			WithID(fmt.Sprintf("00000000-0000-0000-0000-%012d", i+1)),
			WithTitle(fmt.Sprintf("Page %d", i+1)),
		))
	}

	return pages
}

// NewDataSource creates a test data source with the given property schema,
// keyed by display name.
func NewDataSource(id string, schema map[string]string) *notion.DataSource {
	properties := make(map[string]notion.PropertySchema, len(schema))

	for name, propType := range schema {
		properties[name] = notion.PropertySchema{Name: name, Type: propType}
	}

	return &notion.DataSource{
		Object:     "data_source",
		ID:         id,
		Title:      []notion.RichText{notion.NewText("Test Source")},
		Properties: properties,
	}
}
