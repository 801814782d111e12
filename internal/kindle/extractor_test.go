package kindle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fabwerk90/second-brain-collector/internal/models"
)

func TestParseFile(t *testing.T) {
	content := `Title: Meditations
Author: Marcus Aurelius
==========
Highlight (blue) - Location 10
You have power over your mind - not outside events.
==========
Highlight (yellow) - Location 42
The happiness of your life depends upon the quality of your thoughts.
==========
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "meditations.txt")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	e := New()
	if err := e.ParseFile(tmpFile); err != nil {
		t.Errorf("ParseFile() error = %v", err)
	}

	highlights := e.Highlights()
	if len(highlights) != 2 {
		t.Fatalf("Expected 2 highlights, got %d", len(highlights))
	}

	book := e.Book()
	if book.Title != "Meditations" {
		t.Errorf("Expected title 'Meditations', got '%s'", book.Title)
	}
	if book.Author != "Marcus Aurelius" {
		t.Errorf("Expected author 'Marcus Aurelius', got '%s'", book.Author)
	}
	if book.PageTitle() != "Marcus Aurelius - Meditations" {
		t.Errorf("Unexpected page title '%s'", book.PageTitle())
	}

	if e.Raw() != content {
		t.Error("Raw() should return the original export text")
	}
}

func TestParseFileMissing(t *testing.T) {
	e := New()
	if err := e.ParseFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestParseFileInvalidEncoding(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "broken.txt")
	if err := os.WriteFile(tmpFile, []byte{0xff, 0xfe, 0xfd}, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	e := New()
	if err := e.ParseFile(tmpFile); err == nil {
		t.Error("Expected decoding error, got nil")
	}
}

func TestParseFileFallbackTitle(t *testing.T) {
	content := "==========\nJust a quote with no header.\n==========\n"
	tmpFile := filepath.Join(t.TempDir(), "Daily Stoic.txt")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	e := New()
	if err := e.ParseFile(tmpFile); err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	book := e.Book()
	if book.Title != "Daily Stoic" {
		t.Errorf("Expected fallback title 'Daily Stoic', got '%s'", book.Title)
	}
	if book.Author != "Unknown" {
		t.Errorf("Expected fallback author 'Unknown', got '%s'", book.Author)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []models.Highlight
	}{
		{
			name:     "Empty input",
			raw:      "",
			expected: nil,
		},
		{
			name:     "Whitespace only",
			raw:      "  \n\n  ",
			expected: nil,
		},
		{
			name: "Single entry with metadata",
			raw:  "==========\nHighlight (blue) - Location 10\nSome quote text\n==========",
			expected: []models.Highlight{
				{Text: "Some quote text", Location: "Highlight (blue) - Location 10"},
			},
		},
		{
			name: "Entry without metadata line",
			raw:  "==========\nJust some text\nacross two lines\n==========",
			expected: []models.Highlight{
				{Text: "Just some text\nacross two lines"},
			},
		},
		{
			name:     "Metadata only block is dropped",
			raw:      "==========\nHighlight (pink) - Location 99\n==========",
			expected: nil,
		},
		{
			name: "Entry with note",
			raw:  "==========\nHighlight (yellow) - Page 12\nThe quote itself\n- remember this for the essay\n==========",
			expected: []models.Highlight{
				{
					Text:     "The quote itself",
					Location: "Highlight (yellow) - Page 12",
					Note:     "remember this for the essay",
				},
			},
		},
		{
			name: "Order preserved, duplicates kept",
			raw:  "==========\nsame text\n==========\nsame text\n==========",
			expected: []models.Highlight{
				{Text: "same text"},
				{Text: "same text"},
			},
		},
		{
			name: "CRLF line endings",
			raw:  "==========\r\nHighlight (blue) - Location 10\r\nSome quote text\r\n==========\r\nHighlight (pink) - Location 20\r\nAnother quote\r\n==========\r\n",
			expected: []models.Highlight{
				{Text: "Some quote text", Location: "Highlight (blue) - Location 10"},
				{Text: "Another quote", Location: "Highlight (pink) - Location 20"},
			},
		},
		{
			name: "Dash separator",
			raw:  "----------\nfirst\n----------\nsecond\n----------",
			expected: []models.Highlight{
				{Text: "first"},
				{Text: "second"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.Parse(tt.raw)

			got := e.Highlights()
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d highlights, got %d: %+v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Highlight %d = %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseBlockCountRoundTrip(t *testing.T) {
	raw := "==========\nfirst\n==========\nsecond\n==========\nthird\n=========="

	blocks := separatorRe.Split(raw, -1)
	rejoined := strings.Join(blocks, "==========")
	if len(separatorRe.Split(rejoined, -1)) != len(blocks) {
		t.Error("Splitting and rejoining on the separator should preserve the block count")
	}

	e := New()
	e.Parse(raw)
	if len(e.Highlights()) != 3 {
		t.Errorf("Expected 3 highlights, got %d", len(e.Highlights()))
	}
}

func TestParseTruncatesLongHighlights(t *testing.T) {
	long := strings.Repeat("a", 2500)
	e := New()
	e.Parse("==========\n" + long + "\n==========")

	highlights := e.Highlights()
	if len(highlights) != 1 {
		t.Fatalf("Expected 1 highlight, got %d", len(highlights))
	}
	if len([]rune(highlights[0].Text)) != maxHighlightLen {
		t.Errorf("Expected truncated length %d, got %d", maxHighlightLen, len([]rune(highlights[0].Text)))
	}
	if !strings.HasSuffix(highlights[0].Text, "...") {
		t.Error("Truncated highlight should end with ellipsis")
	}
}
