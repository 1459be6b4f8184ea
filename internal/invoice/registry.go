package invoice

import (
	"fmt"
	"sort"
	"sync"
)

// Registry defines the interface for holding the invoices of the
// current session.
type Registry interface {
	// Save stores or replaces an invoice
	Save(inv *Invoice) error

	// Get retrieves an invoice by ID. The caller owns the returned
	// value and may mutate it; changes only take effect through Save.
	Get(id string) (*Invoice, error)

	// List returns all invoices in upload order, caller-owned like Get
	List() ([]*Invoice, error)

	// Delete removes an invoice
	Delete(id string) error
}

// MemoryRegistry implements Registry with an in-memory map. Results
// live only as long as the process: the review workflow is a single
// sitting and nothing is written to disk.
type MemoryRegistry struct {
	mu       sync.RWMutex
	invoices map[string]*Invoice
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		invoices: make(map[string]*Invoice),
	}
}

// Save stores or replaces an invoice.
func (m *MemoryRegistry) Save(inv *Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
	return nil
}

// Get retrieves a copy of an invoice by ID. Handing out a copy keeps
// an in-flight edit from mutating an invoice another goroutine is
// reading; field values themselves are never written through, so a
// struct copy is enough isolation.
func (m *MemoryRegistry) Get(id string) (*Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice not found: %s", id)
	}
	cp := *inv
	return &cp, nil
}

// List returns copies of all invoices sorted by upload time.
func (m *MemoryRegistry) List() ([]*Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	invoices := make([]*Invoice, 0, len(m.invoices))
	for _, inv := range m.invoices {
		cp := *inv
		invoices = append(invoices, &cp)
	}
	sort.Slice(invoices, func(i, j int) bool {
		if invoices[i].CreatedAt.Equal(invoices[j].CreatedAt) {
			return invoices[i].ID < invoices[j].ID
		}
		return invoices[i].CreatedAt.Before(invoices[j].CreatedAt)
	})
	return invoices, nil
}

// Delete removes an invoice.
func (m *MemoryRegistry) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[id]; !ok {
		return fmt.Errorf("invoice not found: %s", id)
	}
	delete(m.invoices, id)
	return nil
}
