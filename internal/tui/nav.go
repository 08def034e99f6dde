package tui

// Role gates which navigation items a user sees. It is passed in
// explicitly so navigation rendering is a pure function of (role, screen).
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole maps a config value to a Role, defaulting to student so a
// misconfigured install never over-grants.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleStudent
}

// NavItem is one entry in the role-aware navigation.
type NavItem struct {
	Screen Screen
	Label  string
	Key    string
}

// NavItemsFor returns the navigation for a role. Pure: same role, same items.
func NavItemsFor(role Role) []NavItem {
	if role == RoleAdmin {
		return []NavItem{
			{Screen: ScreenInvoices, Label: "Invoices", Key: "i"},
			{Screen: ScreenCreateInvoice, Label: "Create Invoice", Key: "c"},
			{Screen: ScreenScanner, Label: "Scanner", Key: "s"},
		}
	}
	return []NavItem{
		{Screen: ScreenInvoices, Label: "My Invoices", Key: "i"},
		{Screen: ScreenScanner, Label: "My QR Code", Key: "s"},
	}
}

// RoleIndicator is the footer tag describing the active portal.
func RoleIndicator(role Role) string {
	if role == RoleAdmin {
		return "Admin Dashboard"
	}
	return "Student Portal"
}
