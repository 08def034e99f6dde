package domain

import (
	"strings"

	"github.com/samber/lo"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// StatusFilterAll matches every status in list filtering.
const StatusFilterAll = "all"

// Invoice is a persisted invoice as returned by the backend list endpoint.
// Entirely backend-owned; this side only reads, filters, and aggregates.
type Invoice struct {
	ID          string        `json:"id"`
	StudentName string        `json:"studentName"`
	Amount      float64       `json:"amount"`
	IssueDate   string        `json:"issueDate"`
	DueDate     string        `json:"dueDate"`
	Status      InvoiceStatus `json:"status"`
	Items       []InvoiceItem `json:"items"`
}

type InvoiceItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// MatchesFilter reports whether an invoice passes the list view's search
// and status filters. An empty search term matches everything; otherwise
// the term must be a case-insensitive substring of the student name or
// the invoice id. statusFilter is either StatusFilterAll or a status value.
func MatchesFilter(inv Invoice, searchTerm, statusFilter string) bool {
	term := strings.ToLower(searchTerm)
	matchesSearch := term == "" ||
		strings.Contains(strings.ToLower(inv.StudentName), term) ||
		strings.Contains(strings.ToLower(inv.ID), term)

	matchesStatus := statusFilter == StatusFilterAll || string(inv.Status) == statusFilter

	return matchesSearch && matchesStatus
}

// FilterInvoices returns the invoices passing MatchesFilter, preserving order.
func FilterInvoices(invoices []Invoice, searchTerm, statusFilter string) []Invoice {
	return lo.Filter(invoices, func(inv Invoice, _ int) bool {
		return MatchesFilter(inv, searchTerm, statusFilter)
	})
}

// RevenueStats are aggregate reductions over a fetched invoice collection.
// They are always computed from the full fetched set, never from the
// filtered subset on display.
type RevenueStats struct {
	Total   float64
	Paid    float64
	Pending float64
	Overdue float64
}

// ComputeRevenueStats sums amount * conversionFactor across all invoices,
// and per status for the three known statuses.
func ComputeRevenueStats(invoices []Invoice, conversionFactor float64) RevenueStats {
	sum := func(invs []Invoice) float64 {
		return lo.SumBy(invs, func(inv Invoice) float64 {
			return inv.Amount * conversionFactor
		})
	}

	byStatus := func(status InvoiceStatus) []Invoice {
		return lo.Filter(invoices, func(inv Invoice, _ int) bool {
			return inv.Status == status
		})
	}

	return RevenueStats{
		Total:   sum(invoices),
		Paid:    sum(byStatus(InvoiceStatusPaid)),
		Pending: sum(byStatus(InvoiceStatusPending)),
		Overdue: sum(byStatus(InvoiceStatusOverdue)),
	}
}
