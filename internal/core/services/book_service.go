package services

import (
	"context"
	"errors"

	"library-api/internal/adapters/persistence/repositories"
	"library-api/internal/core/domain"
	"library-api/internal/pkg/validation"

	"gorm.io/gorm"
)

// bookService handles catalog business logic
type bookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

// Save validates and stores a new book. The ISBN must not be in use.
func (s *bookService) Save(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := validation.Struct(book); err != nil {
		return nil, err
	}

	exists, err := s.bookRepo.ExistsByIsbn(ctx, book.Isbn)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrIsbnAlreadyExists
	}

	return s.bookRepo.Create(ctx, book)
}

// GetByID gets a book by ID
func (s *bookService) GetByID(ctx context.Context, id uint) (*domain.Book, error) {
	return absentIfNotFound(s.bookRepo.GetByID(ctx, id))
}

// GetByIsbn gets a book by its exact ISBN
func (s *bookService) GetByIsbn(ctx context.Context, isbn string) (*domain.Book, error) {
	return absentIfNotFound(s.bookRepo.GetByIsbn(ctx, isbn))
}

// Update overwrites title and author of a stored book
func (s *bookService) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if !book.HasID() {
		return nil, domain.ErrInvalidBookID
	}
	return s.bookRepo.Update(ctx, book)
}

// Delete removes a stored book. Loans referencing it are left untouched.
func (s *bookService) Delete(ctx context.Context, book *domain.Book) error {
	if !book.HasID() {
		return domain.ErrInvalidBookID
	}
	return s.bookRepo.Delete(ctx, book.ID)
}

// Find lists books matching every non-empty field of filter
func (s *bookService) Find(ctx context.Context, filter domain.Book, page domain.PageRequest) (*domain.Page[*domain.Book], error) {
	return s.bookRepo.FindMatching(ctx, filter, page)
}

// absentIfNotFound turns gorm's not-found error into a nil result
func absentIfNotFound[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
