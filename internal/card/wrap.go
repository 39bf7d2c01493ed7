package card

import "strings"

// MeasureFunc returns the rendered width of a string in pixels.
type MeasureFunc func(s string) float64

// Wrap breaks text into lines no wider than maxWidth using greedy
// line-packing. Words wider than maxWidth are hard-split character by
// character. Wrap is pure: it needs no drawing surface, only a measure
// function.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		// Hard-split fragments that can never fit on a line.
		for measure(word) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			if len(runes) <= 1 {
				break
			}
			// Always take at least one rune so progress is guaranteed.
			i := 1
			for i < len(runes) && measure(string(runes[:i+1])) <= maxWidth {
				i++
			}
			lines = append(lines, string(runes[:i]))
			word = string(runes[i:])
			if word == "" {
				break
			}
		}
		if word == "" {
			continue
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// ClampLines drops lines beyond maxLines. No ellipsis, no error.
func ClampLines(lines []string, maxLines int) []string {
	if maxLines < 0 {
		maxLines = 0
	}
	if len(lines) <= maxLines {
		return lines
	}
	return lines[:maxLines]
}
