package domain

// Student is a billable member record, read-only and backend-owned.
// ID is canonicalized to a string regardless of the backend's native
// representation because selection controls compare by string value.
type Student struct {
	ID       string
	FullName string
}
