// Package markdown converts between markdown text and the remote
// store's block tree. Parsing is total: any line that matches no block
// pattern becomes a paragraph, never an error.
package markdown

import (
	"regexp"
	"strings"

	"github.com/klynch/notionctl/internal/notion"
)

var numberedItemPattern = regexp.MustCompile(`^(\d+)\. (.*)$`)

// ParseBlocks converts markdown text into an ordered block sequence in a
// single forward pass over lines. Lookahead is used only for fenced code
// blocks. Dispatch order matters: patterns sharing a prefix are checked
// longest first so "### " never parses as "# ", and todo markers are
// checked before plain bullets.
func ParseBlocks(text string) []notion.Block {
	lines := strings.Split(text, "\n")

	var blocks []notion.Block

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "```"):
			language := strings.TrimSpace(strings.TrimPrefix(line, "```"))

			var content []string

			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}

				content = append(content, lines[i])
			}

			blocks = append(blocks, codeBlock(strings.Join(content, "\n"), language))

		case trimmed == "---" || trimmed == "***":
			blocks = append(blocks, notion.Block{
				Type:    notion.BlockTypeDivider,
				Divider: &struct{}{},
			})

		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, richTextBlock(notion.BlockTypeHeading3, line[4:]))

		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, richTextBlock(notion.BlockTypeHeading2, line[3:]))

		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, richTextBlock(notion.BlockTypeHeading1, line[2:]))

		case strings.HasPrefix(line, "> "):
			blocks = append(blocks, richTextBlock(notion.BlockTypeQuote, line[2:]))

		case strings.HasPrefix(line, "- [ ] "):
			blocks = append(blocks, todoBlock(line[6:], false))

		case strings.HasPrefix(line, "- [x] "):
			blocks = append(blocks, todoBlock(line[6:], true))

		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, richTextBlock(notion.BlockTypeBulletedListItem, line[2:]))

		case strings.HasPrefix(line, "* "):
			blocks = append(blocks, richTextBlock(notion.BlockTypeBulletedListItem, line[2:]))

		case numberedItemPattern.MatchString(line):
			match := numberedItemPattern.FindStringSubmatch(line)
			blocks = append(blocks, richTextBlock(notion.BlockTypeNumberedListItem, match[2]))

		case trimmed == "":
			// Blank lines separate paragraphs but produce no block.

		default:
			blocks = append(blocks, richTextBlock(notion.BlockTypeParagraph, line))
		}
	}

	return blocks
}

func richTextBlock(blockType notion.BlockType, content string) notion.Block {
	payload := &notion.RichTextPayload{RichText: ParseInline(content)}

	block := notion.Block{Type: blockType}

	switch blockType {
	case notion.BlockTypeHeading1:
		block.Heading1 = payload
	case notion.BlockTypeHeading2:
		block.Heading2 = payload
	case notion.BlockTypeHeading3:
		block.Heading3 = payload
	case notion.BlockTypeQuote:
		block.Quote = payload
	case notion.BlockTypeBulletedListItem:
		block.BulletedListItem = payload
	case notion.BlockTypeNumberedListItem:
		block.NumberedListItem = payload
	default:
		block.Type = notion.BlockTypeParagraph
		block.Paragraph = payload
	}

	return block
}

func todoBlock(content string, checked bool) notion.Block {
	return notion.Block{
		Type: notion.BlockTypeToDo,
		ToDo: &notion.ToDoPayload{
			RichText: ParseInline(content),
			Checked:  checked,
		},
	}
}

// codeBlock captures fence content verbatim; inline formatting does not
// apply inside fences.
func codeBlock(content, language string) notion.Block {
	return notion.Block{
		Type: notion.BlockTypeCode,
		Code: &notion.CodePayload{
			RichText: []notion.RichText{notion.NewText(content)},
			Language: language,
		},
	}
}
