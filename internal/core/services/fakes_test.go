package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"library-api/internal/adapters/persistence/repositories"
	"library-api/internal/core/domain"

	"gorm.io/gorm"
)

// memBookRepo is an in-memory BookRepository
type memBookRepo struct {
	mu     sync.Mutex
	nextID uint
	books  map[uint]*domain.Book
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: map[uint]*domain.Book{}}
}

func (r *memBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.Isbn == book.Isbn {
			return nil, domain.ErrIsbnAlreadyExists
		}
	}
	r.nextID++
	stored := *book
	stored.ID = r.nextID
	r.books[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memBookRepo) GetByID(_ context.Context, id uint) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *b
	return &out, nil
}

func (r *memBookRepo) GetByIsbn(_ context.Context, isbn string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.Isbn == isbn {
			out := *b
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBookRepo) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[book.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	b.Title = book.Title
	b.Author = book.Author
	out := *b
	return &out, nil
}

func (r *memBookRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.books, id)
	return nil
}

func (r *memBookRepo) ExistsByIsbn(_ context.Context, isbn string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.Isbn == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookRepo) FindMatching(_ context.Context, filter domain.Book, page domain.PageRequest) (*domain.Page[*domain.Book], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contains := func(v, term string) bool {
		return term == "" || strings.Contains(strings.ToLower(v), strings.ToLower(term))
	}
	var matches []*domain.Book
	for id := uint(1); id <= r.nextID; id++ {
		b, ok := r.books[id]
		if !ok {
			continue
		}
		if contains(b.Title, filter.Title) && contains(b.Author, filter.Author) && contains(b.Isbn, filter.Isbn) {
			out := *b
			matches = append(matches, &out)
		}
	}
	return slicePage(matches, page), nil
}

// memLoanRepo is an in-memory LoanRepository. It resolves loan books through books.
type memLoanRepo struct {
	mu     sync.Mutex
	nextID uint
	loans  map[uint]*domain.Loan
	books  *memBookRepo
	err    error
}

func newMemLoanRepo(books *memBookRepo) *memLoanRepo {
	return &memLoanRepo{loans: map[uint]*domain.Loan{}, books: books}
}

func (r *memLoanRepo) withBook(l *domain.Loan) *domain.Loan {
	out := *l
	if b, err := r.books.GetByID(context.Background(), l.BookID); err == nil {
		out.Book = b
	} else {
		out.Book = nil
	}
	return &out
}

func (r *memLoanRepo) Create(_ context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	stored := *loan
	stored.ID = r.nextID
	stored.Book = nil
	r.loans[stored.ID] = &stored
	return r.withBook(&stored), nil
}

func (r *memLoanRepo) GetByID(_ context.Context, id uint) (*domain.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withBook(l), nil
}

func (r *memLoanRepo) Update(_ context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if _, ok := r.loans[loan.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stored := *loan
	stored.Book = nil
	r.loans[loan.ID] = &stored
	return r.withBook(&stored), nil
}

func (r *memLoanRepo) ExistsByBookNotReturned(_ context.Context, bookID uint) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, l := range r.loans {
		if l.BookID == bookID && l.IsOutstanding() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLoanRepo) FindByIsbnOrCustomer(_ context.Context, filter domain.LoanFilter, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	var matches []*domain.Loan
	for _, l := range r.ordered() {
		full := r.withBook(l)
		isbnMatch := filter.Isbn != "" && full.Book != nil && full.Book.Isbn == filter.Isbn
		customerMatch := filter.Customer != "" && full.Customer == filter.Customer
		if (filter.Isbn == "" && filter.Customer == "") || isbnMatch || customerMatch {
			matches = append(matches, full)
		}
	}
	return slicePage(matches, page), nil
}

func (r *memLoanRepo) FindByBook(_ context.Context, bookID uint, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	var matches []*domain.Loan
	for _, l := range r.ordered() {
		if l.BookID == bookID {
			matches = append(matches, r.withBook(l))
		}
	}
	return slicePage(matches, page), nil
}

func (r *memLoanRepo) FindOverdueUnreturned(_ context.Context, cutoff time.Time) ([]*domain.Loan, error) {
	if r.err != nil {
		return nil, r.err
	}
	var late []*domain.Loan
	for _, l := range r.ordered() {
		if l.IsLate(cutoff) {
			late = append(late, r.withBook(l))
		}
	}
	return late, nil
}

func (r *memLoanRepo) WithBookLock(_ context.Context, _ uint, fn func(repo repositories.LoanRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

func (r *memLoanRepo) ordered() []*domain.Loan {
	out := make([]*domain.Loan, 0, len(r.loans))
	for id := uint(1); id <= r.nextID; id++ {
		if l, ok := r.loans[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func slicePage[T any](items []T, page domain.PageRequest) *domain.Page[T] {
	total := int64(len(items))
	start := page.Offset
	if start > len(items) {
		start = len(items)
	}
	end := len(items)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}
	return &domain.Page[T]{Items: items[start:end], Total: total}
}

var errStorage = errors.New("storage unavailable")

// fixedClock returns a now func pinned to the given date at noon
func fixedClock(year int, month time.Month, day int) func() time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}
