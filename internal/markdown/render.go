package markdown

import (
	"encoding/json"
	"strings"

	"github.com/klynch/notionctl/internal/notion"
)

// RenderBlocks converts a block sequence back to markdown lines. This is
// the structural inverse of ParseBlocks, not an exact one: blank-line
// paragraph grouping from the original markdown is not reconstructed.
func RenderBlocks(blocks []notion.Block) string {
	lines := make([]string, 0, len(blocks))

	for i := range blocks {
		lines = append(lines, renderBlock(&blocks[i]))
	}

	return strings.Join(lines, "\n")
}

func renderBlock(block *notion.Block) string {
	switch block.Type {
	case notion.BlockTypeParagraph:
		return renderInline(payloadRichText(block.Paragraph))

	case notion.BlockTypeHeading1:
		return "# " + renderInline(payloadRichText(block.Heading1))

	case notion.BlockTypeHeading2:
		return "## " + renderInline(payloadRichText(block.Heading2))

	case notion.BlockTypeHeading3:
		return "### " + renderInline(payloadRichText(block.Heading3))

	case notion.BlockTypeQuote:
		return "> " + renderInline(payloadRichText(block.Quote))

	case notion.BlockTypeBulletedListItem:
		return "- " + renderInline(payloadRichText(block.BulletedListItem))

	case notion.BlockTypeNumberedListItem:
		return "1. " + renderInline(payloadRichText(block.NumberedListItem))

	case notion.BlockTypeToDo:
		if block.ToDo == nil {
			return "- [ ] "
		}

		marker := "- [ ] "
		if block.ToDo.Checked {
			marker = "- [x] "
		}

		return marker + renderInline(block.ToDo.RichText)

	case notion.BlockTypeCode:
		if block.Code == nil {
			return "```\n```"
		}

		return "```" + block.Code.Language + "\n" + notion.PlainText(block.Code.RichText) + "\n```"

	case notion.BlockTypeDivider:
		return "---"

	default:
		return renderInline(genericRichText(block))
	}
}

func payloadRichText(payload *notion.RichTextPayload) []notion.RichText {
	if payload == nil {
		return nil
	}

	return payload.RichText
}

// genericRichText extracts a rich_text field from an unrecognized block
// kind's payload so unknown types still render their text.
func genericRichText(block *notion.Block) []notion.RichText {
	raw, ok := block.RawField(string(block.Type))
	if !ok {
		return nil
	}

	var payload notion.RichTextPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	return payload.RichText
}

// renderInline emits markdown markers for each span's annotations
func renderInline(spans []notion.RichText) string {
	var sb strings.Builder

	for _, span := range spans {
		content := span.Content()

		if span.Annotations != nil {
			switch {
			case span.Annotations.Code:
				content = "`" + content + "`"
			case span.Annotations.Bold:
				content = "**" + content + "**"
			case span.Annotations.Italic:
				content = "*" + content + "*"
			}
		}

		if span.Text != nil && span.Text.Link != nil {
			content = "[" + content + "](" + span.Text.Link.URL + ")"
		}

		sb.WriteString(content)
	}

	return sb.String()
}
