package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klynch/notionctl/internal/notion"
)

func TestParseInlinePlainText(t *testing.T) {
	spans := ParseInline("just plain text")
	require.Len(t, spans, 1)

	assert.Equal(t, "just plain text", spans[0].Content())
	assert.Nil(t, spans[0].Annotations)
}

func TestParseInlineEmptyString(t *testing.T) {
	spans := ParseInline("")
	require.Len(t, spans, 1)
	assert.Equal(t, "", spans[0].Content())
}

func TestParseInlineBold(t *testing.T) {
	spans := ParseInline("Hello **bold** world")
	require.Len(t, spans, 3)

	assert.Equal(t, "Hello ", spans[0].Content())
	assert.Nil(t, spans[0].Annotations)

	assert.Equal(t, "bold", spans[1].Content())
	require.NotNil(t, spans[1].Annotations)
	assert.True(t, spans[1].Annotations.Bold)

	assert.Equal(t, " world", spans[2].Content())
	assert.Nil(t, spans[2].Annotations)
}

func TestParseInlineItalic(t *testing.T) {
	spans := ParseInline("an *italic* word")
	require.Len(t, spans, 3)

	require.NotNil(t, spans[1].Annotations)
	assert.True(t, spans[1].Annotations.Italic)
	assert.False(t, spans[1].Annotations.Bold)
}

func TestParseInlineCode(t *testing.T) {
	spans := ParseInline("run `go vet` first")
	require.Len(t, spans, 3)

	assert.Equal(t, "go vet", spans[1].Content())
	require.NotNil(t, spans[1].Annotations)
	assert.True(t, spans[1].Annotations.Code)
}

func TestParseInlineLink(t *testing.T) {
	spans := ParseInline("see [the docs](https://example.com) here")
	require.Len(t, spans, 3)

	assert.Equal(t, "the docs", spans[1].Content())
	require.NotNil(t, spans[1].Text.Link)
	assert.Equal(t, "https://example.com", spans[1].Text.Link.URL)
}

func TestParseInlineBoldBeatsItalic(t *testing.T) {
	spans := ParseInline("**strong**")
	require.Len(t, spans, 1)

	require.NotNil(t, spans[0].Annotations)
	assert.True(t, spans[0].Annotations.Bold)
	assert.False(t, spans[0].Annotations.Italic)
	assert.Equal(t, "strong", spans[0].Content())
}

func TestParseInlineMixedRuns(t *testing.T) {
	spans := ParseInline("**a** then *b* then `c`")
	require.Len(t, spans, 5)

	assert.True(t, spans[0].Annotations.Bold)
	assert.Equal(t, " then ", spans[1].Content())
	assert.True(t, spans[2].Annotations.Italic)
	assert.Equal(t, " then ", spans[3].Content())
	assert.True(t, spans[4].Annotations.Code)
}

func TestParseInlineLeadingAndTrailingMarkers(t *testing.T) {
	spans := ParseInline("**lead** middle **tail**")
	require.Len(t, spans, 3)

	assert.True(t, spans[0].Annotations.Bold)
	assert.Equal(t, " middle ", spans[1].Content())
	assert.True(t, spans[2].Annotations.Bold)
}

func TestParseInlineSpansConcatenateToInput(t *testing.T) {
	inputs := []string{
		"plain",
		"Hello **bold** world",
		"*i* and `c` and [l](https://x.test)",
	}

	for _, input := range inputs {
		spans := ParseInline(input)

		var total string
		for _, span := range spans {
			total += span.Content()
		}

		// Marker characters are consumed, so compare rendered form instead
		assert.Equal(t, input, renderInline(spans))
		assert.NotEmpty(t, total)
	}
}

func TestParseInlineProducesValidRichText(t *testing.T) {
	spans := ParseInline("**bold**")
	require.Len(t, spans, 1)
	assert.Equal(t, "text", spans[0].Type)
	require.NotNil(t, spans[0].Text)
	assert.Equal(t, "bold", spans[0].Text.Content)
	assert.Equal(t, notion.PlainText(spans), "bold")
}
