package models

// Highlight represents a single excerpt marked by the reader in a Kindle
// highlights export, with optional location metadata and reader note.
type Highlight struct {
	Text     string
	Location string // e.g. "Highlight (blue) - Location 10", empty if absent
	Note     string // reader's note attached to the highlight, empty if absent
}

// Book holds the metadata of an export, used as the Notion page title.
type Book struct {
	Title  string
	Author string
}

// PageTitle returns the "Author - Title" form used for the Notion page.
func (b Book) PageTitle() string {
	return b.Author + " - " + b.Title
}

// TranscriptChunk is a bounded-size slice of a transcript, sized to fit
// Notion's per-block rich-text limit. Indices are zero-based and assigned
// in emission order.
type TranscriptChunk struct {
	Index int
	Text  string
}

// VideoPage is a Notion page that references a YouTube video and is
// waiting for its transcript.
type VideoPage struct {
	PageID string
	URL    string
}
