package draft

import (
	"testing"

	"github.com/andy/tuitiondesk/internal/domain"
)

const testConversionFactor = 300

func TestAddItemDefaults(t *testing.T) {
	s := NewStore(testConversionFactor)

	items := s.AddItem()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Description != "" {
		t.Errorf("expected empty description, got %q", item.Description)
	}
	if item.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", item.Quantity)
	}
	if item.Rate != 0 {
		t.Errorf("expected rate 0, got %v", item.Rate)
	}
	if item.Amount != 0 {
		t.Errorf("expected amount 0, got %v", item.Amount)
	}
}

func TestAddItemAssignsUniqueIDs(t *testing.T) {
	s := NewStore(testConversionFactor)

	s.AddItem()
	s.AddItem()
	items := s.AddItem()

	seen := make(map[int64]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Errorf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestUpdateItemRecomputesAmount(t *testing.T) {
	s := NewStore(testConversionFactor)
	item := s.AddItem()[0]

	items := s.UpdateItem(item.ID, FieldRate, "150")
	if items[0].Amount != 1*150*300 {
		t.Errorf("expected amount 45000 after rate edit, got %v", items[0].Amount)
	}

	items = s.UpdateItem(item.ID, FieldQuantity, "2")
	if items[0].Amount != 2*150*300 {
		t.Errorf("expected amount 90000 after quantity edit, got %v", items[0].Amount)
	}
}

func TestUpdateItemDescriptionKeepsAmount(t *testing.T) {
	s := NewStore(testConversionFactor)
	item := s.AddItem()[0]
	s.UpdateItem(item.ID, FieldRate, "100")

	items := s.UpdateItem(item.ID, FieldDescription, "Math tuition")
	if items[0].Description != "Math tuition" {
		t.Errorf("expected description to update, got %q", items[0].Description)
	}
	if items[0].Amount != 30000 {
		t.Errorf("description edit must not change amount, got %v", items[0].Amount)
	}
}

func TestUpdateItemCoercesBadInputToZero(t *testing.T) {
	s := NewStore(testConversionFactor)
	item := s.AddItem()[0]
	s.UpdateItem(item.ID, FieldRate, "150")

	tests := []struct {
		name  string
		field Field
		value string
	}{
		{"non-numeric quantity", FieldQuantity, "abc"},
		{"negative quantity", FieldQuantity, "-3"},
		{"non-numeric rate", FieldRate, "abc"},
		{"negative rate", FieldRate, "-10"},
		{"empty quantity", FieldQuantity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := s.UpdateItem(item.ID, tt.field, tt.value)
			if items[0].Amount != 0 {
				t.Errorf("expected amount 0 for input %q, got %v", tt.value, items[0].Amount)
			}
			// restore a known state for the next case
			s.UpdateItem(item.ID, FieldQuantity, "1")
			s.UpdateItem(item.ID, FieldRate, "150")
		})
	}
}

func TestUpdateItemUnknownIDIsNoop(t *testing.T) {
	s := NewStore(testConversionFactor)
	s.AddItem()
	before := s.Items()

	after := s.UpdateItem(9999, FieldRate, "500")
	if len(after) != len(before) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("item %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestUpdateItemIdempotent(t *testing.T) {
	s := NewStore(testConversionFactor)
	item := s.AddItem()[0]

	first := s.UpdateItem(item.ID, FieldRate, "150")
	second := s.UpdateItem(item.ID, FieldRate, "150")
	if first[0] != second[0] {
		t.Errorf("repeated identical edit changed the item: %+v vs %+v", first[0], second[0])
	}
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	s := NewStore(testConversionFactor)
	s.AddItem()
	s.AddItem()
	s.AddItem()
	items := s.Items()

	after := s.RemoveItem(items[1].ID)
	if len(after) != 2 {
		t.Fatalf("expected 2 items after removal, got %d", len(after))
	}
	if after[0].ID != items[0].ID || after[1].ID != items[2].ID {
		t.Errorf("removal changed relative order: %+v", after)
	}
}

func TestRemoveItemUnknownIDIsNoop(t *testing.T) {
	s := NewStore(testConversionFactor)
	s.AddItem()

	after := s.RemoveItem(9999)
	if len(after) != 1 {
		t.Errorf("expected 1 item, got %d", len(after))
	}
}

func TestRemoveAllItemsLeavesStoreEmpty(t *testing.T) {
	s := NewStore(testConversionFactor)
	item := s.AddItem()[0]

	after := s.RemoveItem(item.ID)
	if len(after) != 0 {
		t.Errorf("expected empty store, got %d items", len(after))
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

// Amount stays derived from quantity and rate across any edit sequence.
func TestAmountInvariantAcrossEditSequences(t *testing.T) {
	s := NewStore(testConversionFactor)
	a := s.AddItem()[0]
	s.AddItem()
	b := s.Items()[1]

	s.UpdateItem(a.ID, FieldQuantity, "2")
	s.UpdateItem(b.ID, FieldRate, "100")
	s.UpdateItem(a.ID, FieldRate, "75")
	s.UpdateItem(b.ID, FieldQuantity, "abc")
	s.UpdateItem(a.ID, FieldDescription, "Chemistry")

	for _, item := range s.Items() {
		want := float64(item.Quantity) * item.Rate * testConversionFactor
		if item.Amount != want {
			t.Errorf("item %d: amount %v, want %v", item.ID, item.Amount, want)
		}
	}
}

func TestItemsReturnsSnapshot(t *testing.T) {
	s := NewStore(testConversionFactor)
	item := s.AddItem()[0]

	snapshot := s.Items()
	s.UpdateItem(item.ID, FieldDescription, "changed")

	if snapshot[0].Description != "" {
		t.Errorf("snapshot mutated by later edit: %q", snapshot[0].Description)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore(testConversionFactor)
	s.AddItem()

	snapshot := s.Items()
	snapshot[0] = domain.LineItem{ID: 42, Description: "tampered"}

	if s.Items()[0].Description == "tampered" {
		t.Error("mutating a returned snapshot leaked into the store")
	}
}
