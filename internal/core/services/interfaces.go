package services

import (
	"context"

	"library-api/internal/core/domain"
)

// Lookups return (nil, nil) when nothing is found; the caller decides what absence means.

// BookService defines catalog operations
type BookService interface {
	Save(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id uint) (*domain.Book, error)
	GetByIsbn(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, book *domain.Book) error
	Find(ctx context.Context, filter domain.Book, page domain.PageRequest) (*domain.Page[*domain.Book], error)
}

// LoanService defines circulation operations
type LoanService interface {
	Save(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	GetByID(ctx context.Context, id uint) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)
	Find(ctx context.Context, filter domain.LoanFilter, page domain.PageRequest) (*domain.Page[*domain.Loan], error)
	GetByBook(ctx context.Context, book *domain.Book, page domain.PageRequest) (*domain.Page[*domain.Loan], error)
	GetAllLateLoans(ctx context.Context) ([]*domain.Loan, error)
}

// EmailService sends one message to a batch of recipients
type EmailService interface {
	SendMails(ctx context.Context, message string, emails []string) error
}
