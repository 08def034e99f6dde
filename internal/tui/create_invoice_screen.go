package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/tuitiondesk/internal/api"
	"github.com/andy/tuitiondesk/internal/app"
	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/draft"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type createMode int

const (
	createModeForm   createMode = iota
	createModePicker            // choosing a student
)

// form slots: 0 student, 1 issue date, 2 due date, 3 notes,
// then three slots per item row (description, qty, rate)
const (
	slotStudent = iota
	slotIssue
	slotDue
	slotNotes
	slotFixedCount
)

type itemRow struct {
	id   int64
	desc textinput.Model
	qty  textinput.Model
	rate textinput.Model
}

// CreateInvoiceModel is the invoice creation form screen
type CreateInvoiceModel struct {
	app  *app.App
	mode createMode

	// Student directory state
	loadingStudents bool
	students        []domain.Student
	dirErr          string
	pickerCursor    int

	// Form state
	issueInput textinput.Model
	dueInput   textinput.Model
	notesInput textinput.Model
	rows       []itemRow
	focus      int

	submitting bool
	alertMsg   string
	alertStyle lipgloss.Style
	statusMsg  string
}

type directoryMsg struct {
	students []domain.Student
	errMsg   string
}

type draftSavedMsg struct {
	err error
}

// NewCreateInvoiceModel creates the invoice form screen model
func NewCreateInvoiceModel(a *app.App) tea.Model {
	m := &CreateInvoiceModel{
		app:             a,
		loadingStudents: true,
	}
	m.rebuildForm()
	return m
}

// IsCapturingInput is always true here: the whole screen is a form, so
// single-letter navigation keys must reach the inputs. Esc leaves.
func (m *CreateInvoiceModel) IsCapturingInput() bool {
	return true
}

func (m *CreateInvoiceModel) Init() tea.Cmd {
	return m.loadStudents()
}

// loadStudents fetches the directory once per screen activation
func (m *CreateInvoiceModel) loadStudents() tea.Cmd {
	return func() tea.Msg {
		students, err := m.app.Directory.Refresh(context.Background())
		if err != nil {
			return directoryMsg{errMsg: m.app.Directory.LastError()}
		}
		return directoryMsg{students: students}
	}
}

// rebuildForm recreates all inputs from the draft service's state
func (m *CreateInvoiceModel) rebuildForm() {
	d := m.app.Draft.Draft()

	m.issueInput = textinput.New()
	m.issueInput.Placeholder = "2026-01-31"
	m.issueInput.CharLimit = 10
	m.issueInput.Width = 12
	m.issueInput.SetValue(d.IssueDate)

	m.dueInput = textinput.New()
	m.dueInput.Placeholder = "2026-02-28"
	m.dueInput.CharLimit = 10
	m.dueInput.Width = 12
	m.dueInput.SetValue(d.DueDate)

	m.notesInput = textinput.New()
	m.notesInput.Placeholder = "Additional notes or terms"
	m.notesInput.CharLimit = 200
	m.notesInput.Width = 50
	m.notesInput.SetValue(d.Notes)

	m.rows = nil
	for _, item := range d.Items {
		m.rows = append(m.rows, m.newRow(item))
	}

	m.focus = slotStudent
	m.applyFocus()
}

func (m *CreateInvoiceModel) newRow(item domain.LineItem) itemRow {
	desc := textinput.New()
	desc.Placeholder = "Item description"
	desc.CharLimit = 100
	desc.Width = 28
	desc.SetValue(item.Description)

	qty := textinput.New()
	qty.Placeholder = "1"
	qty.CharLimit = 5
	qty.Width = 5
	qty.SetValue(fmt.Sprintf("%d", item.Quantity))

	rate := textinput.New()
	rate.Placeholder = "0"
	rate.CharLimit = 10
	rate.Width = 9
	rate.SetValue(trimFloat(item.Rate))

	return itemRow{id: item.ID, desc: desc, qty: qty, rate: rate}
}

// trimFloat renders a rate without trailing zeros for editing
func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func (m *CreateInvoiceModel) slotCount() int {
	return slotFixedCount + 3*len(m.rows)
}

// focusedInput returns the textinput at the current slot, nil for the
// student selector slot
func (m *CreateInvoiceModel) focusedInput() *textinput.Model {
	switch m.focus {
	case slotStudent:
		return nil
	case slotIssue:
		return &m.issueInput
	case slotDue:
		return &m.dueInput
	case slotNotes:
		return &m.notesInput
	}
	idx := m.focus - slotFixedCount
	row := &m.rows[idx/3]
	switch idx % 3 {
	case 0:
		return &row.desc
	case 1:
		return &row.qty
	default:
		return &row.rate
	}
}

// focusedRow returns the item row owning the current slot, or nil
func (m *CreateInvoiceModel) focusedRow() *itemRow {
	if m.focus < slotFixedCount {
		return nil
	}
	return &m.rows[(m.focus-slotFixedCount)/3]
}

func (m *CreateInvoiceModel) applyFocus() {
	m.issueInput.Blur()
	m.dueInput.Blur()
	m.notesInput.Blur()
	for i := range m.rows {
		m.rows[i].desc.Blur()
		m.rows[i].qty.Blur()
		m.rows[i].rate.Blur()
	}
	if in := m.focusedInput(); in != nil {
		in.Focus()
	}
}

func (m *CreateInvoiceModel) moveFocus(delta int) {
	n := m.slotCount()
	m.focus = (m.focus + delta + n) % n
	m.applyFocus()
}

// syncFocusedField pushes the focused input's value into the draft service
func (m *CreateInvoiceModel) syncFocusedField() {
	switch m.focus {
	case slotStudent:
		return
	case slotIssue:
		m.app.Draft.SetIssueDate(m.issueInput.Value())
		return
	case slotDue:
		m.app.Draft.SetDueDate(m.dueInput.Value())
		return
	case slotNotes:
		m.app.Draft.SetNotes(m.notesInput.Value())
		return
	}

	row := m.focusedRow()
	idx := (m.focus - slotFixedCount) % 3
	switch idx {
	case 0:
		m.app.Draft.UpdateItem(row.id, draft.FieldDescription, row.desc.Value())
	case 1:
		m.app.Draft.UpdateItem(row.id, draft.FieldQuantity, row.qty.Value())
	case 2:
		m.app.Draft.UpdateItem(row.id, draft.FieldRate, row.rate.Value())
	}
}

func (m *CreateInvoiceModel) saveDraft() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		_, err := a.Draft.Submit(context.Background())
		return draftSavedMsg{err: err}
	}
}

func (m *CreateInvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loadingStudents = true
		m.dirErr = ""
		return m, m.loadStudents()

	case directoryMsg:
		m.loadingStudents = false
		m.students = msg.students
		m.dirErr = msg.errMsg
		return m, nil

	case draftSavedMsg:
		m.submitting = false
		if msg.err == nil {
			m.alertMsg = "Draft saved successfully"
			m.alertStyle = lipgloss.NewStyle().Foreground(successColor)
			m.app.Draft.Reset()
			m.rebuildForm()
			return m, nil
		}
		m.alertStyle = lipgloss.NewStyle().Foreground(errorColor)
		if apiErr, ok := api.AsError(msg.err); ok {
			switch apiErr.Kind {
			case api.KindValidation:
				m.alertMsg = "Please select a student before saving"
				m.alertStyle = lipgloss.NewStyle().Foreground(warningColor)
			case api.KindNetworkUnavailable:
				m.alertMsg = "Network error. Could not save draft."
			case api.KindBackendRejected:
				m.alertMsg = "Failed to save draft: backend rejected the request"
				if len(apiErr.Response) > 0 {
					m.alertMsg += " - " + truncateStr(string(apiErr.Response), 60)
				}
			default:
				m.alertMsg = msg.err.Error()
			}
		} else {
			m.alertMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if m.mode == createModePicker {
			return m.updatePicker(msg)
		}
		return m.updateForm(msg)
	}

	// Forward non-key messages (cursor blink) to the focused input
	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CreateInvoiceModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenInvoices} }

	case key.Matches(msg, DefaultKeyMap.Next):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Prev):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Save):
		m.alertMsg = ""
		m.submitting = true
		return m, m.saveDraft()

	case key.Matches(msg, DefaultKeyMap.AddItem):
		items := m.app.Draft.AddItem()
		m.rows = append(m.rows, m.newRow(items[len(items)-1]))
		m.focus = m.slotCount() - 3 // description of the new row
		m.applyFocus()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.DelItem):
		row := m.focusedRow()
		if row == nil {
			return m, nil
		}
		// The draft must never lose its final row from the form
		if len(m.rows) <= 1 {
			m.statusMsg = "An invoice needs at least one line item"
			return m, nil
		}
		m.app.Draft.RemoveItem(row.id)
		m.rows = m.rowsWithout(row.id)
		if m.focus >= m.slotCount() {
			m.focus = m.slotCount() - 1
		}
		m.applyFocus()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Select):
		if m.focus == slotStudent {
			if m.loadingStudents {
				m.statusMsg = "Loading students..."
				return m, nil
			}
			if len(m.students) == 0 {
				m.statusMsg = "No students available"
				return m, nil
			}
			m.mode = createModePicker
			m.pickerCursor = 0
			return m, nil
		}
		m.moveFocus(1)
		return m, nil
	}

	m.statusMsg = ""
	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		m.syncFocusedField()
		return m, cmd
	}
	return m, nil
}

func (m *CreateInvoiceModel) rowsWithout(id int64) []itemRow {
	out := make([]itemRow, 0, len(m.rows))
	for _, r := range m.rows {
		if r.id != id {
			out = append(out, r)
		}
	}
	return out
}

func (m *CreateInvoiceModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = createModeForm
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.pickerCursor < len(m.students)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.students) > 0 {
			m.app.Draft.SelectStudent(m.students[m.pickerCursor])
			m.mode = createModeForm
		}
	}
	return m, nil
}

func (m *CreateInvoiceModel) View() string {
	if m.mode == createModePicker {
		return m.pickerView()
	}
	return m.formView()
}

func (m *CreateInvoiceModel) pickerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Student") + "\n\n")
	for i, st := range m.students {
		line := fmt.Sprintf("  %s", st.FullName)
		if i == m.pickerCursor {
			line = selectedStyle.Render(fmt.Sprintf("> %s", st.FullName))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: select  esc: cancel"))
	return b.String()
}

func (m *CreateInvoiceModel) formView() string {
	d := m.app.Draft.Draft()
	label := m.app.Config.Billing.CurrencyLabel

	marker := func(slot int) string {
		if m.focus == slot {
			return "> "
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Invoice Details") + "\n\n")

	student := d.StudentName
	if student == "" {
		student = "Select Student"
		if m.loadingStudents {
			student = "Loading students..."
		}
	}
	b.WriteString(fmt.Sprintf("%sStudent:    %s\n", marker(slotStudent), student))
	if m.dirErr != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(errorColor).Render(m.dirErr) + "\n")
	}
	b.WriteString(fmt.Sprintf("%sIssue Date: %s\n", marker(slotIssue), m.issueInput.View()))
	b.WriteString(fmt.Sprintf("%sDue Date:   %s\n", marker(slotDue), m.dueInput.View()))
	b.WriteString(fmt.Sprintf("%sNotes:      %s\n", marker(slotNotes), m.notesInput.View()))

	b.WriteString("\n" + titleStyle.Render("Invoice Items") + "\n\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("   %-30s %-7s %-11s %s", "Description", "Qty", "Rate", "Amount ("+label+")")) + "\n")

	amounts := make(map[int64]float64, len(d.Items))
	for _, item := range d.Items {
		amounts[item.ID] = item.Amount
	}
	for i, row := range m.rows {
		base := slotFixedCount + 3*i
		rowMark := "  "
		if m.focus >= base && m.focus < base+3 {
			rowMark = "> "
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
			rowMark,
			row.desc.View(),
			row.qty.View(),
			row.rate.View(),
			formatAmount("", amounts[row.id]),
		))
	}

	b.WriteString("\n" + titleStyle.Render("Invoice Summary") + "\n")
	b.WriteString(fmt.Sprintf("  Subtotal:    %s\n", formatAmount(label, m.app.Draft.Subtotal())))
	b.WriteString(fmt.Sprintf("  Tax (%.0f%%):   %s\n", m.app.Config.Billing.TaxRate*100, formatAmount(label, m.app.Draft.Tax())))
	b.WriteString(fmt.Sprintf("  Total:       %s\n", formatAmount(label, m.app.Draft.Total())))

	if m.submitting {
		b.WriteString("\n" + subtitleStyle.Render("Saving draft..."))
	}
	if m.alertMsg != "" {
		b.WriteString("\n" + m.alertStyle.Render(m.alertMsg))
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(warningColor).Render(m.statusMsg))
	}

	b.WriteString("\n\n" + helpStyle.Render("tab: next field  enter: pick student  ctrl+n: add item  ctrl+d: remove item  ctrl+s: save draft  esc: invoices"))
	return b.String()
}
