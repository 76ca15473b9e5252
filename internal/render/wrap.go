package render

import "strings"

// WrapLines breaks text into lines no wider than maxWidth using greedy
// word wrapping: words accumulate onto a line until the next word would push
// the measured width past maxWidth, then the line is flushed. The final
// partial line is always flushed. Words are never split, so a single word
// wider than maxWidth is emitted on a line of its own.
//
// The measure function abstracts the drawing surface: gofpdf's GetStringWidth
// on the PDF side, gg's MeasureString on the raster side.
func WrapLines(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
