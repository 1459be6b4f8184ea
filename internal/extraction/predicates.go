package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// datePattern recognizes day/month/year shapes with slash, dot or dash
// separators ("12/05/2025", "12.05.25").
var datePattern = regexp.MustCompile(`\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`)

// pageLabelPattern matches a page label ending right before a token.
var pageLabelPattern = regexp.MustCompile(`(?i)\b(?:pagina|page)\s*[:.]?\s*$`)

// addressKeywords mark lines whose numbers are street numbers, not
// invoice numbers.
var addressKeywords = []string{
	"via ", "viale ", "piazza ", "corso ", "strada ", "vicolo ", "contrada ",
}

// forbiddenWords are header tokens that match the invoice-number shape
// but never are one.
var forbiddenWords = map[string]struct{}{
	"pagina": {}, "page": {}, "data": {}, "date": {},
	"fattura": {}, "invoice": {}, "telefono": {}, "tel": {},
	"fax": {}, "cap": {}, "iva": {}, "codice": {}, "fiscale": {},
}

// isDate reports whether the token is, or contains, a date.
func isDate(token string) bool {
	return datePattern.MatchString(token)
}

// isAddressLine reports whether the line looks like a street address.
func isAddressLine(line string) bool {
	l := strings.ToLower(line)
	for _, kw := range addressKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// followsPageLabel reports whether a token starting right after the
// given line prefix is introduced by "Pagina" or "Page".
func followsPageLabel(prefix string) bool {
	return pageLabelPattern.MatchString(prefix)
}

// insideAny reports whether the [start,end) span overlaps any of the
// given match spans.
func insideAny(spans [][]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// isYear reports whether the token is a bare four-digit year.
func isYear(token string) bool {
	if len(token) != 4 {
		return false
	}
	n, err := strconv.Atoi(token)
	return err == nil && n > 2000
}

// isForbiddenWord reports whether the token is a known header word.
func isForbiddenWord(token string) bool {
	_, ok := forbiddenWords[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
