package extraction

import "github.com/shopspring/decimal"

// Result holds the fields extracted from one invoice document. Every
// field is independently optional: nil means the matcher found nothing,
// which is a normal outcome, never an error and never a zero value.
type Result struct {
	Number        *string          `json:"number,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Recipient     *string          `json:"recipient,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Compensi      *decimal.Decimal `json:"compensi,omitempty"`
	SpeseGenerali *decimal.Decimal `json:"spese_generali,omitempty"`
	Totale        *decimal.Decimal `json:"totale,omitempty"`
}

// Extract normalizes raw document text and runs every matcher over the
// resulting lines.
func Extract(raw string) Result {
	return ExtractLines(Normalize(raw))
}

// ExtractLines assembles one Result from already-normalized lines. The
// matchers run independently over the same read-only input and do not
// validate each other's fields: Totale is deliberately not checked
// against Compensi plus SpeseGenerali.
func ExtractLines(lines []string) Result {
	var res Result

	if number, ok := MatchNumber(lines); ok {
		res.Number = &number
	}
	if date, ok := MatchDate(lines); ok {
		res.Date = &date
	}
	if name, address, ok := MatchRecipient(lines); ok {
		res.Recipient = &name
		if address != "" {
			res.Address = &address
		}
	}
	if v, ok := MatchCompensi(lines); ok {
		res.Compensi = &v
	}
	if v, ok := MatchSpeseGenerali(lines); ok {
		res.SpeseGenerali = &v
	}
	if v, ok := MatchTotale(lines); ok {
		res.Totale = &v
	}

	return res
}
