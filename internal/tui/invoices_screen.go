package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/tuitiondesk/internal/app"
	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type invoiceViewMode int

const (
	invoiceViewList invoiceViewMode = iota
	invoiceViewDetail
)

// statusFilters is the cycle order for the status filter key
var statusFilters = []string{
	domain.StatusFilterAll,
	string(domain.InvoiceStatusPaid),
	string(domain.InvoiceStatusPending),
	string(domain.InvoiceStatusOverdue),
}

// InvoicesModel displays persisted invoices with search, status filtering,
// aggregate stats, and a database-backed detail view
type InvoicesModel struct {
	app  *app.App
	mode invoiceViewMode

	invoices  []domain.Invoice
	cursor    int
	loading   bool
	spin      spinner.Model
	err       error
	statusMsg string

	// Filters; stats always come from the unfiltered fetch
	searchInput  textinput.Model
	searching    bool
	statusFilter int

	// Monotonic fetch stamp; responses from superseded fetches are dropped
	fetchSeq int

	// Detail state
	detail      *domain.InvoiceRecord
	detailItems []domain.InvoiceItemRecord
}

type invoicesDataMsg struct {
	seq      int
	invoices []domain.Invoice
	err      error
}

type invoiceDetailMsg struct {
	record *domain.InvoiceRecord
	items  []domain.InvoiceItemRecord
	err    error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	search := textinput.New()
	search.Placeholder = "Search invoices..."
	search.CharLimit = 60
	search.Width = 30

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return &InvoicesModel{
		app:         a,
		mode:        invoiceViewList,
		loading:     true,
		spin:        spin,
		searchInput: search,
	}
}

// IsCapturingInput returns true while the search input is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.searching
}

func (m *InvoicesModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadInvoices())
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	return func() tea.Msg {
		invoices, err := m.app.List.FetchInvoices(context.Background())
		return invoicesDataMsg{seq: seq, invoices: invoices, err: err}
	}
}

func (m *InvoicesModel) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		record, err := m.app.DetailRepo.GetInvoice(ctx, id)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}
		items, err := m.app.DetailRepo.GetItems(ctx, id)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}
		return invoiceDetailMsg{record: record, items: items}
	}
}

// filtered returns the rows passing the active filters
func (m *InvoicesModel) filtered() []domain.Invoice {
	return m.app.List.Filter(m.invoices, m.searchInput.Value(), statusFilters[m.statusFilter])
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadInvoices())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case invoicesDataMsg:
		// A newer fetch is in flight; this response is stale
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.invoices
			// The cursor indexes the filtered view, so clamp against that
			if rows := m.filtered(); m.cursor >= len(rows) {
				m.cursor = 0
			}
		}
		return m, nil

	case invoiceDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.mode = invoiceViewList
			return m, nil
		}
		m.detail = msg.record
		m.detailItems = msg.items
		m.mode = invoiceViewDetail
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		switch m.mode {
		case invoiceViewList:
			return m.updateList(msg)
		case invoiceViewDetail:
			return m.updateDetail(msg)
		}
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *InvoicesModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back), key.Matches(msg, DefaultKeyMap.Select):
		m.searching = false
		m.searchInput.Blur()
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	rows := m.filtered()

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Search):
		m.searching = true
		m.searchInput.Focus()
	case key.Matches(msg, DefaultKeyMap.Filter):
		m.statusFilter = (m.statusFilter + 1) % len(statusFilters)
		m.cursor = 0
	case key.Matches(msg, DefaultKeyMap.Refresh):
		m.loading = true
		m.statusMsg = ""
		return m, tea.Batch(m.spin.Tick, m.loadInvoices())
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(rows) == 0 {
			return m, nil
		}
		if m.cursor >= len(rows) {
			m.cursor = len(rows) - 1
		}
		if m.app.DetailRepo == nil {
			m.statusMsg = "Invoice detail source is not configured"
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadDetail(rows[m.cursor].ID))
	}

	return m, nil
}

func (m *InvoicesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, DefaultKeyMap.Back) {
		m.mode = invoiceViewList
		m.detail = nil
		m.detailItems = nil
	}
	return m, nil
}

func (m *InvoicesModel) View() string {
	if m.loading {
		return m.spin.View() + subtitleStyle.Render(" Loading invoices...")
	}
	if m.mode == invoiceViewDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m *InvoicesModel) listView() string {
	label := m.app.Config.Billing.CurrencyLabel
	stats := m.app.List.Stats(m.invoices)

	var b strings.Builder

	// Stats cards over the full fetched set
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n\n",
		boxLine("Total Revenue", formatAmount(label, stats.Total), titleStyle),
		boxLine("Paid", formatAmount(label, stats.Paid), statusPaidStyle),
		boxLine("Pending", formatAmount(label, stats.Pending), statusPendingStyle),
		boxLine("Overdue", formatAmount(label, stats.Overdue), statusOverdueStyle),
	))

	// Search and filter state
	search := m.searchInput.View()
	if !m.searching && m.searchInput.Value() == "" {
		search = subtitleStyle.Render("(press / to search)")
	}
	b.WriteString(fmt.Sprintf("Search: %s   Status: %s\n\n", search, statusFilters[m.statusFilter]))

	rows := m.filtered()
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(m.err.Error()) + "\n")
		return b.String()
	}
	if len(rows) == 0 {
		b.WriteString(subtitleStyle.Render("No invoices found. Try adjusting your search or filter criteria."))
		if m.statusMsg != "" {
			b.WriteString("\n" + lipgloss.NewStyle().Foreground(warningColor).Render(m.statusMsg))
		}
		return b.String()
	}

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-12s %-20s %-14s %-12s %-12s %s",
		"Invoice", "Student", "Amount", "Issued", "Due", "Status")) + "\n")

	conv := m.app.Config.Billing.ConversionFactor
	for i, inv := range rows {
		line := fmt.Sprintf("%-12s %-20s %-14s %-12s %-12s %s",
			padRight(inv.ID, 12),
			padRight(inv.StudentName, 20),
			padRight(formatAmount(label, inv.Amount*conv), 14),
			padRight(inv.IssueDate, 12),
			padRight(inv.DueDate, 12),
			statusStyle(inv.Status).Render(string(inv.Status)),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(">") + " " + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(warningColor).Render(m.statusMsg))
	}

	b.WriteString("\n" + helpStyle.Render("enter: detail  /: search  f: filter  r: refresh"))
	return b.String()
}

func (m *InvoicesModel) detailView() string {
	label := m.app.Config.Billing.CurrencyLabel
	inv := m.detail

	var b strings.Builder
	b.WriteString(titleStyle.Render("Invoice "+inv.InvoiceNumber) + "\n\n")
	b.WriteString(fmt.Sprintf("Customer:   %s", inv.CustomerName))
	if inv.CustomerEmail != "" {
		b.WriteString(subtitleStyle.Render("  <" + inv.CustomerEmail + ">"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Status:     %s\n", statusStyle(domain.InvoiceStatus(inv.Status)).Render(inv.Status)))
	b.WriteString(fmt.Sprintf("Issued:     %s\n", inv.IssueDate))
	b.WriteString(fmt.Sprintf("Due:        %s\n", inv.DueDate))
	if inv.Notes != "" {
		b.WriteString(fmt.Sprintf("Notes:      %s\n", inv.Notes))
	}

	b.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf("%-30s %8s %12s %12s", "Description", "Qty", "Unit Price", "Amount")) + "\n")
	for _, item := range m.detailItems {
		b.WriteString(fmt.Sprintf("%-30s %8g %12s %12s\n",
			padRight(item.Description, 30),
			item.Quantity,
			formatAmount("", item.UnitPrice),
			formatAmount("", item.Amount),
		))
	}

	b.WriteString(fmt.Sprintf("\n%40s %s\n", "Subtotal:", formatAmount(label, inv.Subtotal)))
	b.WriteString(fmt.Sprintf("%40s %s\n", "Tax:", formatAmount(label, inv.Tax)))
	b.WriteString(fmt.Sprintf("%40s %s\n", "Total:", formatAmount(label, inv.Total)))

	b.WriteString("\n" + helpStyle.Render("esc: back to list"))
	return b.String()
}

// boxLine renders a compact stat card
func boxLine(name, value string, style lipgloss.Style) string {
	return boxStyle.Render(subtitleStyle.Render(name) + "\n" + style.Render(value))
}
