package tui

import (
	"errors"
	"strings"

	"github.com/andy/tuitiondesk/internal/app"
	"github.com/andy/tuitiondesk/internal/scanner"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type scannerState int

const (
	scannerReady scannerState = iota
	scannerScanning
	scannerResult
	scannerFailed
)

// ScannerModel drives the QR scan flow. The decode backend is injected
// through the app container so the screen works the same against the
// stub and a real camera.
type ScannerModel struct {
	app     *app.App
	decoder scanner.Decoder
	state   scannerState
	decoded string
	err     error

	// Feeds the in-flight scan command; cancellation posts here so the
	// command never outlives its session
	scanCh chan tea.Msg
}

type scanResultMsg struct{ data string }

type scanErrorMsg struct{ err error }

type scanCancelledMsg struct{}

// NewScannerModel creates a new scanner screen model
func NewScannerModel(a *app.App) tea.Model {
	return &ScannerModel{
		app:     a,
		decoder: a.Decoder,
		state:   scannerReady,
	}
}

func (m *ScannerModel) Init() tea.Cmd {
	return nil
}

// startScan wires the decoder callbacks to a channel and waits for the
// first event. Callbacks may fire from any goroutine. Buffer of 2: a
// callback and a cancellation can both land without blocking.
func (m *ScannerModel) startScan() tea.Cmd {
	ch := make(chan tea.Msg, 2)
	m.scanCh = ch
	dec := m.decoder
	return func() tea.Msg {
		err := dec.Start(
			func(data string) {
				select {
				case ch <- scanResultMsg{data: data}:
				default:
				}
			},
			func(err error) {
				select {
				case ch <- scanErrorMsg{err: err}:
				default:
				}
			},
		)
		if err != nil {
			return scanErrorMsg{err: err}
		}
		return <-ch
	}
}

func (m *ScannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		// Revisiting the screen resets a finished scan
		if m.state == scannerResult || m.state == scannerFailed {
			m.reset()
		}
		return m, nil

	case scanResultMsg:
		// Callbacks from a cancelled session arrive after reset; drop them
		if m.state != scannerScanning {
			return m, nil
		}
		m.state = scannerResult
		m.decoded = msg.data
		m.decoder.Stop()
		return m, nil

	case scanErrorMsg:
		if m.state != scannerScanning {
			return m, nil
		}
		m.state = scannerFailed
		m.err = msg.err
		m.decoder.Stop()
		return m, nil

	case scanCancelledMsg:
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Select):
			if m.state == scannerReady {
				m.state = scannerScanning
				return m, m.startScan()
			}
		case key.Matches(msg, DefaultKeyMap.Refresh):
			if m.state == scannerScanning {
				m.cancelScan()
			} else {
				m.reset()
			}
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Back):
			if m.state == scannerScanning {
				m.cancelScan()
				return m, nil
			}
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenInvoices} }
		}
	}
	return m, nil
}

func (m *ScannerModel) reset() {
	m.state = scannerReady
	m.decoded = ""
	m.err = nil
}

// cancelScan stops the decoder and unblocks the waiting scan command,
// whether or not Stop causes a terminal callback
func (m *ScannerModel) cancelScan() {
	m.decoder.Stop()
	if m.scanCh != nil {
		select {
		case m.scanCh <- scanCancelledMsg{}:
		default:
		}
	}
	m.reset()
}

func (m *ScannerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("QR Scanner") + "\n\n")

	switch m.state {
	case scannerReady:
		b.WriteString("Point a student QR code at the camera to look them up.\n\n")
		b.WriteString(helpStyle.Render("enter: start scanning"))

	case scannerScanning:
		b.WriteString(boxStyle.Render("Scanning...") + "\n\n")
		b.WriteString(helpStyle.Render("esc: cancel"))

	case scannerResult:
		b.WriteString(statusPaidStyle.Render("Scan complete") + "\n\n")
		b.WriteString("Decoded: " + m.decoded + "\n\n")
		b.WriteString(helpStyle.Render("r: scan again  esc: back"))

	case scannerFailed:
		msg := "Scan failed"
		if errors.Is(m.err, scanner.ErrCameraUnavailable) {
			msg = "No camera is available on this device"
		} else if m.err != nil {
			msg = m.err.Error()
		}
		b.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(msg) + "\n\n")
		b.WriteString(helpStyle.Render("r: try again  esc: back"))
	}

	return b.String()
}
