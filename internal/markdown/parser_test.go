package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klynch/notionctl/internal/notion"
)

func TestParseBlocksHeadings(t *testing.T) {
	blocks := ParseBlocks("# Title\n## Section\n### Detail")
	require.Len(t, blocks, 3)

	assert.Equal(t, notion.BlockTypeHeading1, blocks[0].Type)
	assert.Equal(t, "Title", notion.PlainText(blocks[0].Heading1.RichText))

	assert.Equal(t, notion.BlockTypeHeading2, blocks[1].Type)
	assert.Equal(t, "Section", notion.PlainText(blocks[1].Heading2.RichText))

	assert.Equal(t, notion.BlockTypeHeading3, blocks[2].Type)
	assert.Equal(t, "Detail", notion.PlainText(blocks[2].Heading3.RichText))
}

func TestParseBlocksLists(t *testing.T) {
	blocks := ParseBlocks("- first\n* second\n1. third\n2. fourth")
	require.Len(t, blocks, 4)

	assert.Equal(t, notion.BlockTypeBulletedListItem, blocks[0].Type)
	assert.Equal(t, "first", notion.PlainText(blocks[0].BulletedListItem.RichText))

	assert.Equal(t, notion.BlockTypeBulletedListItem, blocks[1].Type)
	assert.Equal(t, "second", notion.PlainText(blocks[1].BulletedListItem.RichText))

	assert.Equal(t, notion.BlockTypeNumberedListItem, blocks[2].Type)
	assert.Equal(t, "third", notion.PlainText(blocks[2].NumberedListItem.RichText))

	assert.Equal(t, notion.BlockTypeNumberedListItem, blocks[3].Type)
	assert.Equal(t, "fourth", notion.PlainText(blocks[3].NumberedListItem.RichText))
}

func TestParseBlocksTodos(t *testing.T) {
	blocks := ParseBlocks("- [ ] open task\n- [x] done task")
	require.Len(t, blocks, 2)

	assert.Equal(t, notion.BlockTypeToDo, blocks[0].Type)
	assert.False(t, blocks[0].ToDo.Checked)
	assert.Equal(t, "open task", notion.PlainText(blocks[0].ToDo.RichText))

	assert.Equal(t, notion.BlockTypeToDo, blocks[1].Type)
	assert.True(t, blocks[1].ToDo.Checked)
	assert.Equal(t, "done task", notion.PlainText(blocks[1].ToDo.RichText))
}

func TestParseBlocksTodoBeatsBullet(t *testing.T) {
	blocks := ParseBlocks("- [ ] task")
	require.Len(t, blocks, 1)
	assert.Equal(t, notion.BlockTypeToDo, blocks[0].Type)
}

func TestParseBlocksQuote(t *testing.T) {
	blocks := ParseBlocks("> quoted text")
	require.Len(t, blocks, 1)

	assert.Equal(t, notion.BlockTypeQuote, blocks[0].Type)
	assert.Equal(t, "quoted text", notion.PlainText(blocks[0].Quote.RichText))
}

func TestParseBlocksDivider(t *testing.T) {
	blocks := ParseBlocks("---\n***")
	require.Len(t, blocks, 2)

	assert.Equal(t, notion.BlockTypeDivider, blocks[0].Type)
	assert.Equal(t, notion.BlockTypeDivider, blocks[1].Type)
}

func TestParseBlocksCodeFence(t *testing.T) {
	blocks := ParseBlocks("```js\nconst x = 1;\nconst y = 2;\n```")
	require.Len(t, blocks, 1)

	require.Equal(t, notion.BlockTypeCode, blocks[0].Type)
	assert.Equal(t, "js", blocks[0].Code.Language)
	assert.Equal(t, "const x = 1;\nconst y = 2;", notion.PlainText(blocks[0].Code.RichText))
}

func TestParseBlocksCodeFenceWithoutLanguage(t *testing.T) {
	blocks := ParseBlocks("```\nplain\n```")
	require.Len(t, blocks, 1)

	assert.Empty(t, blocks[0].Code.Language)
	assert.Equal(t, "plain", notion.PlainText(blocks[0].Code.RichText))
}

func TestParseBlocksUnterminatedCodeFence(t *testing.T) {
	blocks := ParseBlocks("```go\nfmt.Println()")
	require.Len(t, blocks, 1)

	assert.Equal(t, notion.BlockTypeCode, blocks[0].Type)
	assert.Equal(t, "fmt.Println()", notion.PlainText(blocks[0].Code.RichText))
}

func TestParseBlocksCodeFenceKeepsMarkersVerbatim(t *testing.T) {
	blocks := ParseBlocks("```\n**not bold**\n```")
	require.Len(t, blocks, 1)

	assert.Equal(t, "**not bold**", notion.PlainText(blocks[0].Code.RichText))
}

func TestParseBlocksBlankLinesProduceNoBlocks(t *testing.T) {
	blocks := ParseBlocks("first\n\nsecond")
	require.Len(t, blocks, 2)

	assert.Equal(t, notion.BlockTypeParagraph, blocks[0].Type)
	assert.Equal(t, notion.BlockTypeParagraph, blocks[1].Type)
}

func TestParseBlocksFallbackParagraph(t *testing.T) {
	blocks := ParseBlocks("#no space after hash")
	require.Len(t, blocks, 1)

	assert.Equal(t, notion.BlockTypeParagraph, blocks[0].Type)
	assert.Equal(t, "#no space after hash", notion.PlainText(blocks[0].Paragraph.RichText))
}

func TestParseBlocksEmptyInput(t *testing.T) {
	assert.Empty(t, ParseBlocks(""))
}

func TestParseBlocksMixedDocument(t *testing.T) {
	text := "# Notes\nIntro paragraph.\n\n- item one\n- [x] finished\n\n```sh\nls\n```\n---\n> closing thought"

	blocks := ParseBlocks(text)
	require.Len(t, blocks, 7)

	types := make([]notion.BlockType, 0, len(blocks))
	for _, b := range blocks {
		types = append(types, b.Type)
	}

	assert.Equal(t, []notion.BlockType{
		notion.BlockTypeHeading1,
		notion.BlockTypeParagraph,
		notion.BlockTypeBulletedListItem,
		notion.BlockTypeToDo,
		notion.BlockTypeCode,
		notion.BlockTypeDivider,
		notion.BlockTypeQuote,
	}, types)
}
