package search

import (
	"strings"
	"testing"
)

func TestHighlightEmptyQueryReturnsInputUnchanged(t *testing.T) {
	content := "some document content"
	for _, q := range []string{"", " ", "\t\n  "} {
		if got := Highlight(content, q); got != content {
			t.Fatalf("Highlight(%q) changed content: %q", q, got)
		}
	}
}

func TestHighlightWrapsEveryCaseInsensitiveOccurrence(t *testing.T) {
	got := Highlight("abc ABC abcd", "abc")
	want := "<mark>abc</mark> <mark>ABC</mark> <mark>abc</mark>d"
	if got != want {
		t.Fatalf("Highlight = %q, want %q", got, want)
	}
	if n := strings.Count(got, "<mark>"); n != 3 {
		t.Fatalf("expected 3 marks, got %d", n)
	}
}

func TestHighlightPreservesMatchCase(t *testing.T) {
	got := Highlight("Django and DJANGO", "django")
	want := "<mark>Django</mark> and <mark>DJANGO</mark>"
	if got != want {
		t.Fatalf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightEscapesPatternMetacharacters(t *testing.T) {
	got := Highlight("we use c++ and c# daily", "c++")
	want := "we use <mark>c++</mark> and c# daily"
	if got != want {
		t.Fatalf("Highlight = %q, want %q", got, want)
	}

	// A bare ".*" must match literally, not everything.
	if got := Highlight("dot star .* here", ".*"); got != "dot star <mark>.*</mark> here" {
		t.Fatalf("Highlight .* = %q", got)
	}
}

func TestHighlightNoMatchReturnsInput(t *testing.T) {
	content := "nothing to see"
	if got := Highlight(content, "zzz"); got != content {
		t.Fatalf("Highlight = %q, want unchanged", got)
	}
}
