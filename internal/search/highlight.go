// Package search marks query matches in document content for presentation.
package search

import (
	"regexp"
	"strings"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of query in content with
// <mark> tags. The query is escaped before matching, so pattern
// metacharacters are treated literally. An empty or whitespace-only query
// returns the content unchanged. The input is never mutated; callers receive
// a new string and must not persist it.
func Highlight(content, query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return content
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
	return re.ReplaceAllStringFunc(content, func(match string) string {
		return markOpen + match + markClose
	})
}
