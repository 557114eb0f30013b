package markdown

import (
	"regexp"

	"github.com/klynch/notionctl/internal/notion"
)

// inlinePattern recognizes bold, italic, inline code, and links in one
// sweep. Bold precedes italic in the alternation so "**" is never
// consumed as two italic markers.
var inlinePattern = regexp.MustCompile(
	`\*\*(.+?)\*\*|\*(.+?)\*|` + "`(.+?)`" + `|\[([^\]]+)\]\(([^)]+)\)`,
)

// Submatch group offsets within inlinePattern
const (
	groupBold     = 1
	groupItalic   = 2
	groupCode     = 3
	groupLinkText = 4
	groupLinkURL  = 5
)

// ParseInline splits a line into rich text spans, emitting alternating
// plain and annotated runs in source order. Text with no formatting
// yields a single plain span equal to the whole input, never an empty
// span list.
func ParseInline(text string) []notion.RichText {
	matches := inlinePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []notion.RichText{notion.NewText(text)}
	}

	var spans []notion.RichText

	last := 0

	for _, match := range matches {
		start, end := match[0], match[1]

		if start > last {
			spans = append(spans, notion.NewText(text[last:start]))
		}

		spans = append(spans, annotatedSpan(text, match))
		last = end
	}

	if last < len(text) {
		spans = append(spans, notion.NewText(text[last:]))
	}

	return spans
}

func annotatedSpan(text string, match []int) notion.RichText {
	group := func(n int) (string, bool) {
		start, end := match[2*n], match[2*n+1]
		if start < 0 {
			return "", false
		}

		return text[start:end], true
	}

	if content, ok := group(groupBold); ok {
		span := notion.NewText(content)
		span.Annotations = &notion.Annotations{Bold: true}

		return span
	}

	if content, ok := group(groupItalic); ok {
		span := notion.NewText(content)
		span.Annotations = &notion.Annotations{Italic: true}

		return span
	}

	if content, ok := group(groupCode); ok {
		span := notion.NewText(content)
		span.Annotations = &notion.Annotations{Code: true}

		return span
	}

	content, _ := group(groupLinkText)
	url, _ := group(groupLinkURL)

	span := notion.NewText(content)
	span.Text.Link = &notion.Link{URL: url}

	return span
}
