package tui

import (
	"fmt"
	"strings"

	"github.com/andy/tuitiondesk/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenInvoices Screen = iota
	ScreenCreateInvoice
	ScreenScanner
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenInvoices:
		return "Invoices"
	case ScreenCreateInvoice:
		return "Create Invoice"
	case ScreenScanner:
		return "QR Scanner"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	role          Role
	nav           []NavItem
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	invoices tea.Model
	create   tea.Model
	scanner  tea.Model

	// Error state
	err error
}

// New creates a new root model. Navigation derives from the role alone.
func New(a *app.App) Model {
	role := ParseRole(a.Config.UI.Role)
	return Model{
		app:           a,
		role:          role,
		nav:           NavItemsFor(role),
		currentScreen: ScreenInvoices,
		invoices:      NewInvoicesModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.invoices != nil {
		return m.invoices.Init()
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenInvoices:
		if m.invoices == nil {
			m.invoices = NewInvoicesModel(m.app)
			return m.invoices.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenCreateInvoice:
		if m.create == nil {
			m.create = NewCreateInvoiceModel(m.app)
			return m.create.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenScanner:
		if m.scanner == nil {
			m.scanner = NewScannerModel(m.app)
			return m.scanner.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input
// (text forms). When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeModel() tea.Model {
	switch m.currentScreen {
	case ScreenInvoices:
		return m.invoices
	case ScreenCreateInvoice:
		return m.create
	case ScreenScanner:
		return m.scanner
	}
	return nil
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeModel().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// allowedScreen reports whether the role's navigation includes the screen
func (m *Model) allowedScreen(screen Screen) bool {
	for _, item := range m.nav {
		if item.Screen == screen {
			return true
		}
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// ctrl+c quits even while a form is capturing input
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			if key.Matches(msg, DefaultKeyMap.Quit) {
				return m, tea.Quit
			}
			for _, item := range m.nav {
				if msg.String() == item.Key {
					m.currentScreen = item.Screen
					return m, m.initScreen(item.Screen)
				}
			}
		}

	case SwitchScreenMsg:
		if m.allowedScreen(msg.Screen) {
			m.currentScreen = msg.Screen
			return m, m.initScreen(msg.Screen)
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenInvoices:
		if m.invoices != nil {
			m.invoices, cmd = m.invoices.Update(msg)
		}
	case ScreenCreateInvoice:
		if m.create != nil {
			m.create, cmd = m.create.Update(msg)
		}
	case ScreenScanner:
		if m.scanner != nil {
			m.scanner, cmd = m.scanner.Update(msg)
		}
	}

	return m, cmd
}

// footer renders the role-aware navigation hints
func (m Model) footer() string {
	parts := make([]string, 0, len(m.nav)+1)
	for _, item := range m.nav {
		parts = append(parts, fmt.Sprintf("[%s] %s", strings.ToUpper(item.Key), item.Label))
	}
	parts = append(parts, "[Q]uit")
	line := footerStyle.Render(strings.Join(parts, "  "))
	tag := subtitleStyle.Render(RoleIndicator(m.role))
	return line + "\n" + tag
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("tuitiondesk - %s", m.currentScreen.String()))

	var content string
	if active := m.activeModel(); active != nil {
		content = active.View()
	} else {
		content = "Loading..."
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, m.footer())

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
