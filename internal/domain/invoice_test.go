package domain

import "testing"

func TestMatchesFilter(t *testing.T) {
	inv := Invoice{ID: "INV-1", StudentName: "Ravi", Status: InvoiceStatusPaid}

	tests := []struct {
		name   string
		search string
		status string
		want   bool
	}{
		{"empty search all statuses", "", StatusFilterAll, true},
		{"name substring case-insensitive", "rav", StatusFilterAll, true},
		{"id substring", "inv-1", StatusFilterAll, true},
		{"no match", "priya", StatusFilterAll, false},
		{"matching status", "rav", "paid", true},
		{"non-matching status", "rav", "pending", false},
		{"status alone filters", "", "overdue", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(inv, tt.search, tt.status); got != tt.want {
				t.Errorf("MatchesFilter(%q, %q) = %v, want %v", tt.search, tt.status, got, tt.want)
			}
		})
	}
}

func TestFilterInvoicesPreservesOrder(t *testing.T) {
	invoices := []Invoice{
		{ID: "INV-1", StudentName: "Ravi", Status: InvoiceStatusPaid},
		{ID: "INV-2", StudentName: "Priya", Status: InvoiceStatusPending},
		{ID: "INV-3", StudentName: "Ravindra", Status: InvoiceStatusPaid},
	}

	got := FilterInvoices(invoices, "rav", StatusFilterAll)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "INV-1" || got[1].ID != "INV-3" {
		t.Errorf("order not preserved: %v, %v", got[0].ID, got[1].ID)
	}
}

func TestComputeRevenueStats(t *testing.T) {
	invoices := []Invoice{
		{ID: "INV-1", Amount: 100, Status: InvoiceStatusPaid},
		{ID: "INV-2", Amount: 50, Status: InvoiceStatusPending},
		{ID: "INV-3", Amount: 25, Status: InvoiceStatusOverdue},
		{ID: "INV-4", Amount: 10, Status: InvoiceStatusPaid},
	}

	stats := ComputeRevenueStats(invoices, 300)
	if stats.Total != 185*300 {
		t.Errorf("Total = %v, want %v", stats.Total, 185*300)
	}
	if stats.Paid != 110*300 {
		t.Errorf("Paid = %v, want %v", stats.Paid, 110*300)
	}
	if stats.Pending != 50*300 {
		t.Errorf("Pending = %v, want %v", stats.Pending, 50*300)
	}
	if stats.Overdue != 25*300 {
		t.Errorf("Overdue = %v, want %v", stats.Overdue, 25*300)
	}
}

func TestComputeRevenueStatsEmpty(t *testing.T) {
	stats := ComputeRevenueStats(nil, 300)
	if stats.Total != 0 || stats.Paid != 0 || stats.Pending != 0 || stats.Overdue != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

// Stats cover the full fetched set; filtering only changes what is displayed.
func TestStatsIndependentOfFilter(t *testing.T) {
	invoices := []Invoice{
		{ID: "INV-1", StudentName: "Ravi", Amount: 100, Status: InvoiceStatusPaid},
		{ID: "INV-2", StudentName: "Priya", Amount: 50, Status: InvoiceStatusPending},
	}

	full := ComputeRevenueStats(invoices, 300)
	filtered := FilterInvoices(invoices, "ravi", StatusFilterAll)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 filtered invoice, got %d", len(filtered))
	}
	if full.Total != 150*300 {
		t.Errorf("full-set total = %v, want %v", full.Total, 150*300)
	}
}
