package extraction

import "strings"

// Normalize splits raw document text into trimmed, non-empty lines,
// preserving their original order. Line order carries positional
// meaning for the matchers: labels and their values are adjacent
// line-locally, so lines are never merged or reordered.
func Normalize(raw string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
