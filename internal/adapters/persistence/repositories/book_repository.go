package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-api/internal/adapters/persistence/models"
	"library-api/internal/core/domain"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book
func (r *bookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	row := models.NewBook(book)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		// the unique index catches inserts that raced past ExistsByIsbn
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrIsbnAlreadyExists
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return row.ToDomain(), nil
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*domain.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return book.ToDomain(), nil
}

// GetByIsbn gets a book by its exact ISBN
func (r *bookRepository) GetByIsbn(ctx context.Context, isbn string) (*domain.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return book.ToDomain(), nil
}

// Update overwrites title and author. The ISBN column is never touched.
func (r *bookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	err := r.db.WithContext(ctx).
		Model(&models.Book{ID: book.ID}).
		Updates(map[string]interface{}{
			"title":  book.Title,
			"author": book.Author,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update book %d: %w", book.ID, err)
	}
	return r.GetByID(ctx, book.ID)
}

// Delete removes a book
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

// ExistsByIsbn checks if isbn exists
func (r *bookRepository) ExistsByIsbn(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// FindMatching lists books whose fields contain every non-empty filter field, ignoring case
func (r *bookRepository) FindMatching(ctx context.Context, filter domain.Book, page domain.PageRequest) (*domain.Page[*domain.Book], error) {
	scope := func(db *gorm.DB) *gorm.DB {
		fields := [...]struct{ column, value string }{
			{"title", filter.Title},
			{"author", filter.Author},
			{"isbn", filter.Isbn},
		}
		for _, f := range fields {
			if f.value == "" {
				continue
			}
			db = db.Where("LOWER("+f.column+") LIKE ?", "%"+strings.ToLower(f.value)+"%")
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	var rows []*models.Book
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("id").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}

	books := make([]*domain.Book, len(rows))
	for i, row := range rows {
		books[i] = row.ToDomain()
	}
	return &domain.Page[*domain.Book]{Items: books, Total: total}, nil
}
