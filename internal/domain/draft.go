package domain

import "errors"

// LineItem is one billable row within an invoice draft. Amount is derived:
// it always equals Quantity * Rate * conversionFactor once an edit settles,
// and is never written directly by the user.
type LineItem struct {
	ID          int64
	Description string
	Quantity    int
	Rate        float64
	Amount      float64
}

// InvoiceDraft is the transient, local-only form state for a new invoice.
// After a successful submission it has no further local representation;
// the list view reflects the backend's copy on its next fetch.
type InvoiceDraft struct {
	StudentID   string
	StudentName string // denormalized from the selected student
	IssueDate   string // calendar date, "2006-01-02"
	DueDate     string
	Notes       string
	Items       []LineItem
}

var (
	ErrStudentRequired = errors.New("a student must be selected before saving")
	ErrNoLineItems     = errors.New("invoice needs at least one line item")
)

// Validate returns an error if the draft cannot be submitted.
// Student selection is the only hard requirement; dates and notes pass
// through to the backend as entered.
func (d *InvoiceDraft) Validate() error {
	if d.StudentID == "" {
		return ErrStudentRequired
	}
	if len(d.Items) == 0 {
		return ErrNoLineItems
	}
	return nil
}

// Subtotal sums the derived amounts of all items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Amount
	}
	return sum
}

// Tax applies taxRate to the subtotal. No intermediate rounding.
func Tax(items []LineItem, taxRate float64) float64 {
	return Subtotal(items) * taxRate
}

// Total is subtotal plus tax.
func Total(items []LineItem, taxRate float64) float64 {
	return Subtotal(items) + Tax(items, taxRate)
}
