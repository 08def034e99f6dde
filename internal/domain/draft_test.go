package domain

import (
	"math"
	"testing"
)

const taxRate = 0.18

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalsEmptyItems(t *testing.T) {
	if got := Subtotal(nil); got != 0 {
		t.Errorf("Subtotal(nil) = %v, want 0", got)
	}
	if got := Tax(nil, taxRate); got != 0 {
		t.Errorf("Tax(nil) = %v, want 0", got)
	}
	if got := Total(nil, taxRate); got != 0 {
		t.Errorf("Total(nil) = %v, want 0", got)
	}
}

func TestTotalsTwoItems(t *testing.T) {
	items := []LineItem{
		{ID: 1, Quantity: 1, Rate: 150, Amount: 45000},
		{ID: 2, Quantity: 2, Rate: 50, Amount: 30000},
	}

	if got := Subtotal(items); got != 75000 {
		t.Errorf("Subtotal = %v, want 75000", got)
	}
	if got := Tax(items, taxRate); !almostEqual(got, 13500) {
		t.Errorf("Tax = %v, want 13500", got)
	}
	if got := Total(items, taxRate); !almostEqual(got, 88500) {
		t.Errorf("Total = %v, want 88500", got)
	}
}

func TestTotalIsSubtotalPlusTax(t *testing.T) {
	items := []LineItem{
		{Amount: 1234.5},
		{Amount: 777.25},
		{Amount: 0},
	}

	want := Subtotal(items) + Tax(items, taxRate)
	if got := Total(items, taxRate); !almostEqual(got, want) {
		t.Errorf("Total = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	item := LineItem{ID: 1, Quantity: 1, Rate: 100, Amount: 30000}

	tests := []struct {
		name    string
		draft   InvoiceDraft
		wantErr error
	}{
		{
			name:    "no student",
			draft:   InvoiceDraft{Items: []LineItem{item}},
			wantErr: ErrStudentRequired,
		},
		{
			name:    "no items",
			draft:   InvoiceDraft{StudentID: "42"},
			wantErr: ErrNoLineItems,
		},
		{
			name:    "valid",
			draft:   InvoiceDraft{StudentID: "42", Items: []LineItem{item}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.draft.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
