package tui

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"student", RoleStudent},
		{"", RoleStudent},
		{"superuser", RoleStudent},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNavItemsForAdmin(t *testing.T) {
	items := NavItemsFor(RoleAdmin)
	if len(items) != 3 {
		t.Fatalf("expected 3 admin items, got %d", len(items))
	}

	screens := map[Screen]bool{}
	for _, item := range items {
		screens[item.Screen] = true
	}
	if !screens[ScreenCreateInvoice] {
		t.Error("admin navigation must include the create-invoice screen")
	}
}

func TestNavItemsForStudent(t *testing.T) {
	items := NavItemsFor(RoleStudent)
	if len(items) != 2 {
		t.Fatalf("expected 2 student items, got %d", len(items))
	}
	for _, item := range items {
		if item.Screen == ScreenCreateInvoice {
			t.Error("student navigation must not include the create-invoice screen")
		}
	}
}

func TestNavItemsForIsPure(t *testing.T) {
	a := NavItemsFor(RoleAdmin)
	b := NavItemsFor(RoleAdmin)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("item %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
