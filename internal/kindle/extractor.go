package kindle

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fabwerk90/second-brain-collector/internal/logger"
	"github.com/fabwerk90/second-brain-collector/internal/models"
)

// maxHighlightLen is Notion's per-rich-text character limit. Longer
// highlight bodies are truncated with an ellipsis.
const maxHighlightLen = 2000

var (
	// separatorRe matches a delimiter line: a run of at least five
	// identical punctuation characters, e.g. "==========". The trailing
	// \r keeps CRLF exports splittable.
	separatorRe = regexp.MustCompile(`(?m)^[ \t]*(?:={5,}|-{5,}|\*{5,}|_{5,}|~{5,}|#{5,})[ \t]*\r?$`)

	// metadataRe matches the location annotation line of an entry,
	// e.g. "Highlight (blue) - Location 10" or
	// "- Your Highlight on page 5 | Location 100-102".
	metadataRe = regexp.MustCompile(`(?i)^.*\bhighlight\b.*\b(?:location|page)\b.*$`)

	titleRe  = regexp.MustCompile(`(?i)^title:\s*(.+)$`)
	authorRe = regexp.MustCompile(`(?i)^author:\s*(.+)$`)
)

// Extractor turns a raw Kindle highlights export into structured records
type Extractor struct {
	raw        string
	book       models.Book
	highlights []models.Highlight
}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{}
}

// ParseFile reads and parses a Kindle highlights export file
func (e *Extractor) ParseFile(path string) error {
	logger.Debug("Reading Kindle highlights export file", map[string]interface{}{
		"filepath": path,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("failed to decode file %s: not valid UTF-8", path)
	}

	e.Parse(string(data))

	if e.book.Title == "" {
		e.book.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	logger.Info("Successfully parsed highlights export file", map[string]interface{}{
		"highlights_count": len(e.highlights),
		"book":             e.book.PageTitle(),
	})

	return nil
}

// Parse splits the raw export text into highlights. Entries are separated
// by a delimiter line; blocks that are empty after stripping, or that
// contain only a metadata line and no body, are dropped.
func (e *Extractor) Parse(raw string) {
	e.raw = raw
	e.book = extractBook(raw)
	e.highlights = nil

	for _, block := range separatorRe.Split(raw, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		h := parseBlock(block)
		if h.Text == "" {
			continue
		}
		e.highlights = append(e.highlights, h)
	}
}

// parseBlock turns one delimited block into a Highlight. The first line is
// treated as the location annotation when it matches the metadata pattern;
// a later line starting with "- " is the reader's note.
func parseBlock(block string) models.Highlight {
	lines := strings.Split(block, "\n")

	var h models.Highlight
	var body []string
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && metadataRe.MatchString(line) {
			h.Location = line
			continue
		}
		// Header lines of the export describe the book, not a highlight.
		if titleRe.MatchString(line) || authorRe.MatchString(line) {
			continue
		}
		if len(body) > 0 && h.Note == "" && strings.HasPrefix(line, "- ") {
			h.Note = strings.TrimSpace(strings.TrimPrefix(line, "- "))
			continue
		}
		body = append(body, line)
	}

	h.Text = truncate(strings.Join(body, "\n"))
	return h
}

// truncate enforces the Notion rich text limit on a highlight body.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxHighlightLen {
		return text
	}
	return string(runes[:maxHighlightLen-3]) + "..."
}

// extractBook recovers title and author from the export header lines.
func extractBook(raw string) models.Book {
	book := models.Book{Author: "Unknown"}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if m := titleRe.FindStringSubmatch(line); m != nil && book.Title == "" {
			book.Title = strings.TrimSpace(m[1])
		}
		if m := authorRe.FindStringSubmatch(line); m != nil && book.Author == "Unknown" {
			book.Author = strings.TrimSpace(m[1])
		}
		if book.Title != "" && book.Author != "Unknown" {
			break
		}
	}
	return book
}

// Highlights returns all highlights from the parsed export
func (e *Extractor) Highlights() []models.Highlight {
	return e.highlights
}

// Book returns the book metadata from the parsed export
func (e *Extractor) Book() models.Book {
	return e.book
}

// Raw returns the raw export text
func (e *Extractor) Raw() string {
	return e.raw
}
