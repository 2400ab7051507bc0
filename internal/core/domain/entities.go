package domain

import "time"

// Book represents a catalog entry
type Book struct {
	ID     uint   `json:"id"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Isbn   string `json:"isbn" validate:"required"`
}

// HasID reports whether the book has been persisted
func (b *Book) HasID() bool {
	return b != nil && b.ID != 0
}

// Loan represents a book lent to a customer
type Loan struct {
	ID            uint
	Customer      string
	CustomerEmail string
	BookID        uint
	Book          *Book
	LoanDate      time.Time
	// Returned is tri-state: nil and false both mean the book is still out.
	Returned *bool
}

// IsOutstanding reports whether the book has not been returned yet
func (l *Loan) IsOutstanding() bool {
	return l.Returned == nil || !*l.Returned
}

// IsLate reports whether the loan is outstanding and was made on or before cutoff
func (l *Loan) IsLate(cutoff time.Time) bool {
	return l.IsOutstanding() && !civil(l.LoanDate).After(civil(cutoff))
}

// civil drops the clock and the zone so dates read from different
// locations compare by calendar day.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoanFilter holds the search terms for loans.
// Non-empty terms are combined with OR.
type LoanFilter struct {
	Isbn     string
	Customer string
}

// PageRequest describes a bounded slice of a result set
type PageRequest struct {
	Offset int
	Limit  int
}

// Page is a slice of results plus the total number of matches
type Page[T any] struct {
	Items []T
	Total int64
}

// DateOf truncates t to midnight in its own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}
