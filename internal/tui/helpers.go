package tui

import (
	"fmt"
	"strings"

	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// formatAmount renders a display-currency amount with comma grouping,
// e.g. "Rs 45,000". Whole amounts drop the decimal part.
func formatAmount(label string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, byte(c))
	}

	out := string(grouped)
	if decPart != ".00" {
		out += decPart
	}
	if negative {
		out = "-" + out
	}
	if label == "" {
		return out
	}
	return label + " " + out
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// statusStyle picks the badge style for an invoice status
func statusStyle(status domain.InvoiceStatus) lipgloss.Style {
	switch status {
	case domain.InvoiceStatusPaid:
		return statusPaidStyle
	case domain.InvoiceStatusOverdue:
		return statusOverdueStyle
	default:
		return statusPendingStyle
	}
}

// padRight pads or truncates to an exact width for table columns
func padRight(s string, width int) string {
	s = truncateStr(s, width)
	if len(s) < width {
		s += strings.Repeat(" ", width-len(s))
	}
	return s
}
