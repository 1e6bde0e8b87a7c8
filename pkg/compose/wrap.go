package compose

import "strings"

// Wrap breaks text into lines that each measure at most maxWidth.
//
// The algorithm is greedy: words accumulate into the current line while the
// joined line still fits; the first overflowing word starts the next line.
// A single word wider than maxWidth stays on its own (overflowing) line;
// the engine never hyphenates or breaks mid-word.
//
// Wrap is a pure function of the measured widths, so wrapping the same
// string with the same measurer twice yields identical line slices.
func Wrap(measure func(string) float64, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// TruncateToWidth shortens s until it measures at most maxWidth, removing
// trailing runes. Used for single-line elements whose drawing primitive
// clips at a maximum width instead of wrapping.
func TruncateToWidth(measure func(string) float64, s string, maxWidth float64) string {
	if measure(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if measure(string(runes)) <= maxWidth {
			break
		}
	}
	return string(runes)
}

// ellipsize caps lines at max entries. When the input is longer, the last
// kept line has its final three characters replaced with "...".
func ellipsize(lines []string, max int) []string {
	if len(lines) <= max {
		return lines
	}
	kept := append([]string(nil), lines[:max]...)
	last := []rune(kept[max-1])
	if len(last) > 3 {
		kept[max-1] = string(last[:len(last)-3]) + "..."
	} else {
		kept[max-1] = "..."
	}
	return kept
}
