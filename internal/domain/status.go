package domain

// Status is the availability state of a Book.
type Status string

const (
	// StatusAvailable means the book is on the shelf. New books start here.
	StatusAvailable Status = "available"

	// StatusCheckedOut means the book has been lent out.
	StatusCheckedOut Status = "checked_out"
)

// Statuses returns every valid status in menu order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusCheckedOut}
}

// ParseStatus converts s into a Status.
// Returns an *InvalidStatusError if s is not exactly one of the known values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", NewInvalidStatusError(s)
	}
	return st, nil
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusCheckedOut:
		return true
	default:
		return false
	}
}

// String returns the status literal as it is stored.
func (s Status) String() string {
	return string(s)
}
