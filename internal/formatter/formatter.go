// Package formatter renders pages and query results for display.
package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/property"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatLong  OutputFormat = "long"
	FormatJSON  OutputFormat = "json"
)

const shortIDLen = 8

// Formatter handles page and row output formatting
type Formatter struct{}

// NewFormatter creates a new formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatPage formats a single page's properties
func (f *Formatter) FormatPage(page *notion.Page, format OutputFormat) (string, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode page: %w", err)
		}

		return string(data), nil
	}

	return f.formatLong(page), nil
}

// FormatPages formats a list of pages as a table or JSON
func (f *Formatter) FormatPages(pages []notion.Page, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(pages, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode pages: %w", err)
		}

		return string(data), nil
	case FormatLong:
		sections := make([]string, 0, len(pages))
		for i := range pages {
			sections = append(sections, f.formatLong(&pages[i]))
		}

		return strings.Join(sections, "\n\n"), nil
	default:
		return f.formatRows(pages), nil
	}
}

// formatLong renders one page as aligned "Name: value" lines, title
// first and the remaining properties in sorted order.
func (f *Formatter) formatLong(page *notion.Page) string {
	var lines []string

	title := page.Title()
	if title == "" {
		title = "(untitled)"
	}

	lines = append(lines, fmt.Sprintf("%s  (id: %s)", title, page.ID))

	if page.URL != "" {
		lines = append(lines, "URL: "+page.URL)
	}

	names := make([]string, 0, len(page.Properties))

	for name, prop := range page.Properties {
		if prop.Type == "title" {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	for _, name := range names {
		prop := page.Properties[name]
		lines = append(lines, fmt.Sprintf("%-*s  %s", width+1, name+":", property.Read(&prop)))
	}

	if !page.LastEditedTime.IsZero() {
		lines = append(lines, "Last edited: "+f.humanizeAge(page.LastEditedTime))
	}

	return strings.Join(lines, "\n")
}

// formatRows renders pages as one summary line each
func (f *Formatter) formatRows(pages []notion.Page) string {
	if len(pages) == 0 {
		return "(no results)"
	}

	lines := make([]string, 0, len(pages))

	for i := range pages {
		page := &pages[i]

		title := page.Title()
		if title == "" {
			title = "(untitled)"
		}

		id := page.ID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}

		lines = append(lines, fmt.Sprintf(
			"%s  %s  edited %s",
			id, title, f.humanizeAge(page.LastEditedTime),
		))
	}

	return strings.Join(lines, "\n")
}

// FormatUsers formats a user listing
func (f *Formatter) FormatUsers(users []notion.User, format OutputFormat) (string, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(users, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode users: %w", err)
		}

		return string(data), nil
	}

	lines := make([]string, 0, len(users))
	for _, user := range users {
		name := user.Name
		if name == "" {
			name = "(unnamed)"
		}

		lines = append(lines, fmt.Sprintf("%s  %s  (%s)", user.ID, name, user.Type))
	}

	return strings.Join(lines, "\n"), nil
}

// FormatComments formats a comment listing
func (f *Formatter) FormatComments(comments []notion.Comment, format OutputFormat) (string, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(comments, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode comments: %w", err)
		}

		return string(data), nil
	}

	lines := make([]string, 0, len(comments))

	for i := range comments {
		comment := &comments[i]

		author := ""
		if comment.CreatedBy != nil {
			author = comment.CreatedBy.Name
		}

		if author == "" {
			author = "(unknown)"
		}

		lines = append(lines, fmt.Sprintf(
			"%s  %s: %s",
			f.humanizeAge(comment.CreatedTime), author, notion.PlainText(comment.RichText),
		))
	}

	return strings.Join(lines, "\n"), nil
}

// humanizeAge converts a time to a human-readable age string
func (f *Formatter) humanizeAge(t time.Time) string {
	if t.IsZero() {
		return "?"
	}

	days := int(time.Since(t).Hours() / 24)

	switch {
	case days < 1:
		return "today"
	case days == 1:
		return "1 day ago"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}

		return fmt.Sprintf("%d months ago", months)
	}

	years := days / 365
	if years == 1 {
		return "1 year ago"
	}

	return fmt.Sprintf("%d years ago", years)
}
