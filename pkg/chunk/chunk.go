// Package chunk splits user supplied knowledge into sentence level fragments,
// the unit the embedding pipeline works with. Embeddings are zipped back to
// chunks by position, so order must follow the original text.
package chunk

import "strings"

const delimiter = "."

// Split breaks text into trimmed, non-empty sentence fragments.
// Empty or whitespace-only input yields nil.
func Split(text string) []string {
	var chunks []string
	for _, part := range strings.Split(strings.TrimSpace(text), delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, part)
	}
	return chunks
}
