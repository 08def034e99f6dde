package tui

import (
	"context"
	"testing"

	"github.com/andy/tuitiondesk/internal/api"
	"github.com/andy/tuitiondesk/internal/app"
	"github.com/andy/tuitiondesk/internal/config"
	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/logger"
	"github.com/andy/tuitiondesk/internal/scanner"
	"github.com/andy/tuitiondesk/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// stub backends shared by the screen tests
type stubLister struct {
	invoices []domain.Invoice
	err      error
}

func (s *stubLister) List(ctx context.Context, memberID string) ([]domain.Invoice, error) {
	return s.invoices, s.err
}

type stubFetcher struct {
	students []domain.Student
	err      error
}

func (s *stubFetcher) FetchStudents(ctx context.Context) ([]domain.Student, error) {
	return s.students, s.err
}

type stubSubmitter struct {
	calls int
	err   error
}

func (s *stubSubmitter) Submit(ctx context.Context, studentID string, req api.SubmitRequest) (*api.Receipt, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &api.Receipt{}, nil
}

func newTestApp() *app.App {
	cfg := config.DefaultConfig()
	log := logger.Nop()
	return &app.App{
		Config:    cfg,
		Log:       log,
		Directory: service.NewDirectoryService(&stubFetcher{}, log),
		Draft:     service.NewDraftService(&stubSubmitter{}, cfg.Billing.TaxRate, cfg.Billing.ConversionFactor, log),
		List:      service.NewListService(&stubLister{}, cfg.Backend.MemberID, cfg.Billing.ConversionFactor, log),
		Decoder:   scanner.NewStubDecoder(),
	}
}

func TestRefetchClampsCursorToFilteredRows(t *testing.T) {
	m := NewInvoicesModel(newTestApp()).(*InvoicesModel)

	full := []domain.Invoice{
		{ID: "INV-1", StudentName: "Ravi", Status: domain.InvoiceStatusPaid},
		{ID: "INV-2", StudentName: "Priya", Status: domain.InvoiceStatusPending},
		{ID: "INV-3", StudentName: "Ravindra", Status: domain.InvoiceStatusPaid},
		{ID: "INV-4", StudentName: "Asha", Status: domain.InvoiceStatusOverdue},
		{ID: "INV-5", StudentName: "Raveena", Status: domain.InvoiceStatusPending},
	}
	m.Update(invoicesDataMsg{seq: m.fetchSeq, invoices: full})

	m.searchInput.SetValue("rav")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 within the filtered rows", m.cursor)
	}

	// A refresh lands where only one row still matches the search
	shrunk := []domain.Invoice{
		{ID: "INV-1", StudentName: "Ravi", Status: domain.InvoiceStatusPaid},
		{ID: "INV-4", StudentName: "Asha", Status: domain.InvoiceStatusOverdue},
	}
	m.Update(invoicesDataMsg{seq: m.fetchSeq, invoices: shrunk})

	rows := m.filtered()
	if len(rows) != 1 {
		t.Fatalf("expected 1 filtered row, got %d", len(rows))
	}
	if m.cursor >= len(rows) {
		t.Fatalf("cursor %d out of range for %d filtered rows", m.cursor, len(rows))
	}

	// Selecting the row must stay in bounds of the filtered slice
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.statusMsg == "" {
		t.Error("expected the unconfigured-detail message after select")
	}
}

func TestStaleFetchResponseIsDropped(t *testing.T) {
	m := NewInvoicesModel(newTestApp()).(*InvoicesModel)

	m.loadInvoices()
	stale := invoicesDataMsg{seq: m.fetchSeq, invoices: []domain.Invoice{{ID: "OLD"}}}

	// A second fetch starts before the first response arrives
	m.loadInvoices()
	fresh := invoicesDataMsg{seq: m.fetchSeq, invoices: []domain.Invoice{{ID: "NEW"}}}

	m.Update(fresh)
	m.Update(stale)

	if len(m.invoices) != 1 || m.invoices[0].ID != "NEW" {
		t.Errorf("stale response replaced fresh data: %+v", m.invoices)
	}
	if m.loading {
		t.Error("screen still loading after the current fetch resolved")
	}
}

func TestFilterCycleResetsCursor(t *testing.T) {
	m := NewInvoicesModel(newTestApp()).(*InvoicesModel)
	m.Update(invoicesDataMsg{seq: m.fetchSeq, invoices: []domain.Invoice{
		{ID: "INV-1", Status: domain.InvoiceStatusPaid},
		{ID: "INV-2", Status: domain.InvoiceStatusPending},
	}})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after filter change, want 0", m.cursor)
	}
	if got := statusFilters[m.statusFilter]; got != string(domain.InvoiceStatusPaid) {
		t.Errorf("status filter = %q, want %q", got, domain.InvoiceStatusPaid)
	}
}
