package repositories

import (
	"context"
	"time"

	"library-api/internal/core/domain"
)

// BookRepository defines catalog storage
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id uint) (*domain.Book, error)
	GetByIsbn(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id uint) error
	ExistsByIsbn(ctx context.Context, isbn string) (bool, error)
	FindMatching(ctx context.Context, filter domain.Book, page domain.PageRequest) (*domain.Page[*domain.Book], error)
}

// LoanRepository defines loan storage
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	GetByID(ctx context.Context, id uint) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	ExistsByBookNotReturned(ctx context.Context, bookID uint) (bool, error)
	FindByIsbnOrCustomer(ctx context.Context, filter domain.LoanFilter, page domain.PageRequest) (*domain.Page[*domain.Loan], error)
	FindByBook(ctx context.Context, bookID uint, page domain.PageRequest) (*domain.Page[*domain.Loan], error)
	FindOverdueUnreturned(ctx context.Context, cutoff time.Time) ([]*domain.Loan, error)

	// WithBookLock runs fn while holding an exclusive lock on the book row.
	// The repository passed to fn shares the lock's transaction.
	WithBookLock(ctx context.Context, bookID uint, fn func(repo LoanRepository) error) error
}
