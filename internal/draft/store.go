// Package draft holds the in-memory line item collection behind the
// create-invoice form. Every mutation produces a new snapshot slice so
// rendering never observes a half-applied edit.
package draft

import (
	"strconv"
	"strings"

	"github.com/andy/tuitiondesk/internal/domain"
)

// Field names an editable LineItem field.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldRate        Field = "rate"
)

// Store is an ordered collection of invoice line items. Insertion order is
// display order. The store never repopulates itself: preventing removal of
// the final row is the form's job, not the store's.
type Store struct {
	conversionFactor float64
	nextID           int64
	items            []domain.LineItem
}

// NewStore creates an empty store. conversionFactor converts a base-currency
// rate into the display-currency amount.
func NewStore(conversionFactor float64) *Store {
	return &Store{
		conversionFactor: conversionFactor,
		nextID:           1,
	}
}

// Items returns a snapshot copy of the current collection.
func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// AddItem appends a new item with default field values and a fresh id,
// and returns the new snapshot.
func (s *Store) AddItem() []domain.LineItem {
	item := domain.LineItem{
		ID:       s.nextID,
		Quantity: 1,
		Rate:     0,
		Amount:   0,
	}
	s.nextID++

	next := make([]domain.LineItem, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, item)
	return s.Items()
}

// RemoveItem removes the item with the given id, preserving the relative
// order of the rest. Unknown ids leave the collection unchanged.
func (s *Store) RemoveItem(id int64) []domain.LineItem {
	next := make([]domain.LineItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	s.items = next
	return s.Items()
}

// UpdateItem replaces the named field on the matching item with the raw
// input value. Edits to quantity or rate recompute the derived amount from
// the post-update quantity and rate. Unknown ids are a no-op.
func (s *Store) UpdateItem(id int64, field Field, value string) []domain.LineItem {
	next := make([]domain.LineItem, len(s.items))
	for i, item := range s.items {
		if item.ID == id {
			switch field {
			case FieldDescription:
				item.Description = value
			case FieldQuantity:
				item.Quantity = coerceInt(value)
				item.Amount = float64(item.Quantity) * item.Rate * s.conversionFactor
			case FieldRate:
				item.Rate = coerceFloat(value)
				item.Amount = float64(item.Quantity) * item.Rate * s.conversionFactor
			}
		}
		next[i] = item
	}
	s.items = next
	return s.Items()
}

// coerceInt parses a non-negative integer, coercing failures and negative
// input to 0 so the amount invariant never sees NaN or garbage.
func coerceInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func coerceFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
