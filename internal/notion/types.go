package notion

import (
	"encoding/json"
	"time"
)

// RichText represents a run of text carrying optional formatting
// annotations or a hyperlink. A plain run carries no Annotations struct.
type RichText struct {
	Type        string       `json:"type,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Href        string       `json:"href,omitempty"`
}

// TextContent is the literal content of a text-typed rich text run
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is a hyperlink attached to a rich text run
type Link struct {
	URL string `json:"url"`
}

// Annotations are the formatting flags on a rich text run
type Annotations struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Code   bool `json:"code,omitempty"`
}

// NewText builds a plain text-typed rich text run
func NewText(content string) RichText {
	return RichText{
		Type:      "text",
		Text:      &TextContent{Content: content},
		PlainText: content,
	}
}

// Content returns the literal content of a rich text run, preferring the
// text payload over the API-provided plain_text echo.
func (r RichText) Content() string {
	if r.Text != nil {
		return r.Text.Content
	}

	return r.PlainText
}

// PlainText concatenates the literal content of a rich text sequence
func PlainText(spans []RichText) string {
	var out string
	for _, span := range spans {
		out += span.Content()
	}

	return out
}

// BlockType identifies the shape of a block's payload
type BlockType string

const (
	BlockTypeParagraph        BlockType = "paragraph"
	BlockTypeHeading1         BlockType = "heading_1"
	BlockTypeHeading2         BlockType = "heading_2"
	BlockTypeHeading3         BlockType = "heading_3"
	BlockTypeBulletedListItem BlockType = "bulleted_list_item"
	BlockTypeNumberedListItem BlockType = "numbered_list_item"
	BlockTypeToDo             BlockType = "to_do"
	BlockTypeQuote            BlockType = "quote"
	BlockTypeCode             BlockType = "code"
	BlockTypeDivider          BlockType = "divider"
)

// RichTextPayload is the payload shared by text-bearing block kinds
type RichTextPayload struct {
	RichText []RichText `json:"rich_text"`
}

// ToDoPayload is the payload of a to_do block
type ToDoPayload struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

// CodePayload is the payload of a code block
type CodePayload struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// Block is an atomic unit of rich content. The Type tag determines which
// payload field is set; exactly one payload is populated per block.
type Block struct {
	Object      string    `json:"object,omitempty"`
	ID          string    `json:"id,omitempty"`
	Type        BlockType `json:"type"`
	HasChildren bool      `json:"has_children,omitempty"`

	Paragraph        *RichTextPayload `json:"paragraph,omitempty"`
	Heading1         *RichTextPayload `json:"heading_1,omitempty"`
	Heading2         *RichTextPayload `json:"heading_2,omitempty"`
	Heading3         *RichTextPayload `json:"heading_3,omitempty"`
	BulletedListItem *RichTextPayload `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextPayload `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoPayload     `json:"to_do,omitempty"`
	Quote            *RichTextPayload `json:"quote,omitempty"`
	Code             *CodePayload     `json:"code,omitempty"`
	Divider          *struct{}        `json:"divider,omitempty"`

	raw map[string]json.RawMessage
}

// UnmarshalJSON decodes the known payloads and keeps the raw field map so
// unrecognized block kinds can still be rendered generically.
func (b *Block) UnmarshalJSON(data []byte) error {
	type alias Block

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*b = Block(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		b.raw = raw
	}

	return nil
}

// RawField returns the raw JSON of a top-level field, if present
func (b *Block) RawField(name string) (json.RawMessage, bool) {
	data, ok := b.raw[name]
	return data, ok
}

// Option is a select, multi-select, or status choice
type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is a date or date range property payload
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// PageReference points at another page, as used by relation properties
type PageReference struct {
	ID string `json:"id"`
}

// FormulaValue is the computed result of a formula property
type FormulaValue struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// RollupValue is the aggregated result of a rollup property
type RollupValue struct {
	Type   string          `json:"type"`
	Number *float64        `json:"number,omitempty"`
	Date   *DateValue      `json:"date,omitempty"`
	Array  []PropertyValue `json:"array,omitempty"`
}

// File is an uploaded or externally-linked file attachment
type File struct {
	Name     string       `json:"name,omitempty"`
	Type     string       `json:"type,omitempty"`
	File     *FileURL     `json:"file,omitempty"`
	External *ExternalURL `json:"external,omitempty"`
}

// FileURL is an API-hosted file location
type FileURL struct {
	URL string `json:"url"`
}

// ExternalURL is an externally-hosted file location
type ExternalURL struct {
	URL string `json:"url"`
}

// User represents a workspace member or bot
type User struct {
	Object    string `json:"object,omitempty"`
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PropertyValue is a typed property value as returned on a page object.
// The Type tag determines which payload field is meaningful.
type PropertyValue struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	Title          []RichText      `json:"title,omitempty"`
	RichText       []RichText      `json:"rich_text,omitempty"`
	Number         *float64        `json:"number,omitempty"`
	Select         *Option         `json:"select,omitempty"`
	MultiSelect    []Option        `json:"multi_select,omitempty"`
	Status         *Option         `json:"status,omitempty"`
	Date           *DateValue      `json:"date,omitempty"`
	Checkbox       *bool           `json:"checkbox,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Formula        *FormulaValue   `json:"formula,omitempty"`
	Relation       []PageReference `json:"relation,omitempty"`
	Rollup         *RollupValue    `json:"rollup,omitempty"`
	People         []User          `json:"people,omitempty"`
	Files          []File          `json:"files,omitempty"`
	CreatedTime    *string         `json:"created_time,omitempty"`
	LastEditedTime *string         `json:"last_edited_time,omitempty"`
	CreatedBy      *User           `json:"created_by,omitempty"`
	LastEditedBy   *User           `json:"last_edited_by,omitempty"`

	raw map[string]json.RawMessage
}

// UnmarshalJSON decodes the known payloads and keeps the raw field map so
// undocumented property types can still be displayed.
func (p *PropertyValue) UnmarshalJSON(data []byte) error {
	type alias PropertyValue

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*p = PropertyValue(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		p.raw = raw
	}

	return nil
}

// RawField returns the raw JSON of a top-level field, if present
func (p *PropertyValue) RawField(name string) (json.RawMessage, bool) {
	data, ok := p.raw[name]
	return data, ok
}

// Parent identifies the container of a page, block, or comment
type Parent struct {
	Type         string `json:"type,omitempty"`
	DataSourceID string `json:"data_source_id,omitempty"`
	PageID       string `json:"page_id,omitempty"`
	BlockID      string `json:"block_id,omitempty"`
	Workspace    bool   `json:"workspace,omitempty"`
}

// Page is a single record: a row in a data source or a standalone document
type Page struct {
	Object         string                   `json:"object,omitempty"`
	ID             string                   `json:"id"`
	CreatedTime    time.Time                `json:"created_time,omitzero"`
	LastEditedTime time.Time                `json:"last_edited_time,omitzero"`
	Archived       bool                     `json:"archived,omitempty"`
	Parent         *Parent                  `json:"parent,omitempty"`
	Properties     map[string]PropertyValue `json:"properties,omitempty"`
	URL            string                   `json:"url,omitempty"`
}

// Title returns the page's title property content, or "" when absent
func (p *Page) Title() string {
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			return PlainText(prop.Title)
		}
	}

	return ""
}

// PropertySchema declares a single property's type on a data source
type PropertySchema struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// DataSource is a queryable structured collection with a declared schema
type DataSource struct {
	Object     string                    `json:"object,omitempty"`
	ID         string                    `json:"id"`
	Title      []RichText                `json:"title,omitempty"`
	Properties map[string]PropertySchema `json:"properties"`
	Parent     *Parent                   `json:"parent,omitempty"`
	URL        string                    `json:"url,omitempty"`
}

// Comment is a discussion entry attached to a page or block
type Comment struct {
	Object         string     `json:"object,omitempty"`
	ID             string     `json:"id"`
	DiscussionID   string     `json:"discussion_id,omitempty"`
	Parent         *Parent    `json:"parent,omitempty"`
	CreatedTime    time.Time  `json:"created_time,omitzero"`
	LastEditedTime time.Time  `json:"last_edited_time,omitzero"`
	CreatedBy      *User      `json:"created_by,omitempty"`
	RichText       []RichText `json:"rich_text,omitempty"`
}

// Sort orders query results by a property
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// QueryRequest is the body of a data source query call
type QueryRequest struct {
	Filter      json.Marshaler `json:"filter,omitempty"`
	Sorts       []Sort         `json:"sorts,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

// QueryResult is the paged envelope returned by a data source query
type QueryResult struct {
	Object     string `json:"object,omitempty"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// SearchRequest is the body of a workspace search call
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// SearchFilter restricts search results to one object kind
type SearchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// SearchResult is the paged envelope returned by search
type SearchResult struct {
	Object     string `json:"object,omitempty"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// BlockChildren is the paged envelope returned by block child listing
type BlockChildren struct {
	Object     string  `json:"object,omitempty"`
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// UserList is the paged envelope returned by user listing
type UserList struct {
	Object     string `json:"object,omitempty"`
	Results    []User `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// CommentList is the paged envelope returned by comment listing
type CommentList struct {
	Object     string    `json:"object,omitempty"`
	Results    []Comment `json:"results"`
	HasMore    bool      `json:"has_more"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CreatePageRequest is the body of a page creation call
type CreatePageRequest struct {
	Parent     Parent                 `json:"parent"`
	Properties map[string]interface{} `json:"properties"`
	Children   []Block                `json:"children,omitempty"`
}

// UpdatePageRequest is the body of a page property update call
type UpdatePageRequest struct {
	Properties map[string]interface{} `json:"properties,omitempty"`
	Archived   *bool                  `json:"archived,omitempty"`
}

// CreateCommentRequest is the body of a comment creation call
type CreateCommentRequest struct {
	Parent       *Parent    `json:"parent,omitempty"`
	DiscussionID string     `json:"discussion_id,omitempty"`
	RichText     []RichText `json:"rich_text"`
}
