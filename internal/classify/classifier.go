// Package classify assigns documents to a fixed topic taxonomy by keyword
// frequency scoring over extracted text.
package classify

import (
	"strings"
	"time"
)

// Unclassified is returned when no taxonomy keyword occurs in the content.
const Unclassified = "Unclassified"

// Classifier scores content against an ordered category table.
type Classifier struct {
	categories []Category
}

// New constructs a Classifier over the built-in taxonomy.
func New() *Classifier {
	return &Classifier{categories: taxonomy}
}

// NewWithCategories constructs a Classifier over a custom rule table.
// Intended for tests; production code uses New.
func NewWithCategories(categories []Category) *Classifier {
	return &Classifier{categories: categories}
}

// Classify returns the category path whose keywords best match the content.
// Each category scores the number of DISTINCT keywords present as a
// case-insensitive substring; repeated occurrences do not raise the score.
// The highest score wins, ties break to the earliest category in table
// order, and content matching nothing returns Unclassified.
func (c *Classifier) Classify(content string) string {
	lowered := strings.ToLower(content)

	best := Unclassified
	bestScore := 0
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			best = cat.Path
			bestScore = score
		}
	}
	return best
}

// ClassifyTimed runs Classify and reports the elapsed wall-clock time in
// milliseconds. The duration is observational only.
func (c *Classifier) ClassifyTimed(content string) (string, float64) {
	start := time.Now()
	label := c.Classify(content)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	return label, elapsed
}
