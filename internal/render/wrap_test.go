package render

import (
	"reflect"
	"strings"
	"testing"
)

// charWidth measures one unit per character, making expected line breaks easy
// to reason about.
func charWidth(s string) float64 { return float64(len(s)) }

func TestWrapLines_Empty(t *testing.T) {
	if got := WrapLines("", 10, charWidth); got != nil {
		t.Fatalf("WrapLines empty = %v, want nil", got)
	}
	if got := WrapLines("   ", 10, charWidth); got != nil {
		t.Fatalf("WrapLines whitespace = %v, want nil", got)
	}
}

func TestWrapLines_SingleLine(t *testing.T) {
	got := WrapLines("short text", 20, charWidth)
	want := []string{"short text"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WrapLines = %v, want %v", got, want)
	}
}

func TestWrapLines_Greedy(t *testing.T) {
	// "aa bb cc" with maxWidth 5: "aa bb" is 5 wide and fits, "cc" flushes.
	got := WrapLines("aa bb cc", 5, charWidth)
	want := []string{"aa bb", "cc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WrapLines = %v, want %v", got, want)
	}
}

func TestWrapLines_NeverSplitsWords(t *testing.T) {
	got := WrapLines("supercalifragilistic is long", 5, charWidth)
	want := []string{"supercalifragilistic", "is", "long"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WrapLines = %v, want %v", got, want)
	}
}

func TestWrapLines_EveryLineWithinWidth(t *testing.T) {
	text := "volunteers collected litter along the river bank during the morning session"
	lines := WrapLines(text, 18, charWidth)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	joined := ""
	for _, line := range lines {
		// Multi-word lines must fit; only a single over-long word may exceed.
		if charWidth(line) > 18 && strings.Contains(line, " ") {
			t.Fatalf("line %q exceeds width 18", line)
		}
		if joined != "" {
			joined += " "
		}
		joined += line
	}
	if joined != text {
		t.Fatalf("wrapped text = %q, want %q", joined, text)
	}
}
