package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/fabwerk90/second-brain-collector/internal/models"
)

// Split breaks text into ordered chunks of at most size runes, breaking at
// whitespace boundaries. Words are accumulated greedily; a chunk is closed
// when the next word would push it past the limit. A single word longer
// than size is emitted as its own oversized chunk rather than being split.
// Chunk indices are zero-based and assigned in emission order.
func Split(text string, size int) []models.TranscriptChunk {
	var chunks []models.TranscriptChunk
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, models.TranscriptChunk{
			Index: len(chunks),
			Text:  current.String(),
		})
		current.Reset()
		currentLen = 0
	}

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)

		// +1 for the joining space when the chunk is non-empty.
		needed := wordLen
		if currentLen > 0 {
			needed++
		}

		if currentLen > 0 && currentLen+needed > size {
			flush()
		}

		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	flush()

	return chunks
}
