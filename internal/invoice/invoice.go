package invoice

import (
	"time"

	"github.com/ilbui/Agente-fatture-Ai/internal/extraction"
)

// Invoice represents one uploaded invoice and its extracted fields.
// The original PDF bytes are kept so the reviewer can open the source
// document next to the fields; nothing outlives the running session.
type Invoice struct {
	ID        string            `json:"id"`
	Filename  string            `json:"filename"`
	Fields    extraction.Result `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	FileData    []byte `json:"-"`
	ContentType string `json:"-"`
}

// FieldEdits carries manually corrected values from the review UI.
// Amount fields use the Italian "1.234,56" notation. A nil pointer
// leaves the field untouched; an empty string clears it back to absent.
type FieldEdits struct {
	Number        *string `json:"number"`
	Date          *string `json:"date"`
	Recipient     *string `json:"recipient"`
	Address       *string `json:"address"`
	Compensi      *string `json:"compensi"`
	SpeseGenerali *string `json:"spese_generali"`
	Totale        *string `json:"totale"`
}
