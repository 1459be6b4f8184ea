package invoice

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ilbui/Agente-fatture-Ai/internal/export"
	"github.com/ilbui/Agente-fatture-Ai/internal/extraction"
	"github.com/ilbui/Agente-fatture-Ai/internal/scanning"
)

// IDGenerator generates unique IDs for invoices
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles the invoice review lifecycle: upload, extraction,
// manual correction and export.
type Service struct {
	registry    Registry
	scanner     scanning.Scanner
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(registry Registry, scanner scanning.Scanner) *Service {
	return &Service{
		registry:    registry,
		scanner:     scanner,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(registry Registry, scanner scanning.Scanner, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		registry:    registry,
		scanner:     scanner,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ProcessInvoice runs extraction on an uploaded document and registers
// the result. Missing fields are not an error: the invoice is stored
// with absent fields for the reviewer to fill in.
func (s *Service) ProcessInvoice(filename string, data []byte, contentType string) (*Invoice, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	fields, err := s.scanner.Scan(data, contentType)
	if err != nil {
		slog.Error("Failed to scan invoice",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("scanning invoice: %w", err)
	}

	inv := &Invoice{
		ID:          id,
		Filename:    filename,
		Fields:      fields,
		CreatedAt:   now,
		UpdatedAt:   now,
		FileData:    data,
		ContentType: contentType,
	}

	if err := s.registry.Save(inv); err != nil {
		return nil, fmt.Errorf("registering invoice: %w", err)
	}

	return inv, nil
}

// GetInvoice retrieves an invoice by ID
func (s *Service) GetInvoice(id string) (*Invoice, error) {
	inv, err := s.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return inv, nil
}

// ListInvoices returns all invoices of the session
func (s *Service) ListInvoices() ([]*Invoice, error) {
	invoices, err := s.registry.List()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice from the session
func (s *Service) DeleteInvoice(id string) error {
	if err := s.registry.Delete(id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}
	return nil
}

// GetInvoiceFile retrieves the original document of an invoice
func (s *Service) GetInvoiceFile(id string) ([]byte, string, error) {
	inv, err := s.registry.Get(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting invoice: %w", err)
	}
	return inv.FileData, inv.ContentType, nil
}

// UpdateFields applies manual corrections from the reviewer to an
// invoice. Clearing a field sets it back to absent, never to zero.
func (s *Service) UpdateFields(id string, edits FieldEdits) (*Invoice, error) {
	inv, err := s.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("getting invoice for update: %w", err)
	}

	fields := inv.Fields
	applyText(&fields.Number, edits.Number)
	applyText(&fields.Date, edits.Date)
	applyText(&fields.Recipient, edits.Recipient)
	applyText(&fields.Address, edits.Address)
	if err := applyAmount(&fields.Compensi, edits.Compensi, "compensi"); err != nil {
		return nil, err
	}
	if err := applyAmount(&fields.SpeseGenerali, edits.SpeseGenerali, "spese generali"); err != nil {
		return nil, err
	}
	if err := applyAmount(&fields.Totale, edits.Totale, "totale"); err != nil {
		return nil, err
	}

	inv.Fields = fields
	inv.UpdatedAt = s.timeSource.Now()
	if err := s.registry.Save(inv); err != nil {
		return nil, fmt.Errorf("saving invoice: %w", err)
	}
	return inv, nil
}

// ExportRows renders the whole session as spreadsheet rows.
func (s *Service) ExportRows() ([]export.Row, error) {
	invoices, err := s.registry.List()
	if err != nil {
		return nil, fmt.Errorf("listing invoices for export: %w", err)
	}
	rows := make([]export.Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, export.FromResult(inv.Filename, inv.Fields))
	}
	return rows, nil
}

func applyText(field **string, edit *string) {
	if edit == nil {
		return
	}
	value := strings.TrimSpace(*edit)
	if value == "" {
		*field = nil
		return
	}
	*field = &value
}

func applyAmount(field **decimal.Decimal, edit *string, name string) error {
	if edit == nil {
		return nil
	}
	value := strings.TrimSpace(*edit)
	if value == "" {
		*field = nil
		return nil
	}
	d, ok := extraction.ParseAmount(value)
	if !ok {
		return fmt.Errorf("invalid amount for %s: %q", name, value)
	}
	*field = &d
	return nil
}
