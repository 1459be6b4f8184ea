package extraction

import "regexp"

var (
	// labeledDatePattern captures a date introduced by the usual
	// Italian date labels ("Data: 12/05/2025", "Milano, del 12-05-2025").
	labeledDatePattern = regexp.MustCompile(`(?i)(?:data|del|li)\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`)

	// bareDatePattern matches any dd/mm/yyyy in the text.
	bareDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)
)

// MatchDate finds the invoice date. A labeled date anywhere in the
// document wins; otherwise the first bare date in document order is
// taken. The matched string is returned as written, not reformatted.
func MatchDate(lines []string) (string, bool) {
	for _, line := range lines {
		if m := labeledDatePattern.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	for _, line := range lines {
		if m := bareDatePattern.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}
