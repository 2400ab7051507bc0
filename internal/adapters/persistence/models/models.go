package models

import (
	"time"

	"library-api/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Catalog
// ============================================================

// Book represents books table
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	Isbn      string    `gorm:"uniqueIndex;size:32;not null" json:"isbn"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// ToDomain converts the row to a domain book
func (b *Book) ToDomain() *domain.Book {
	return &domain.Book{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Isbn:   b.Isbn,
	}
}

// NewBook builds a row from a domain book
func NewBook(b *domain.Book) *Book {
	return &Book{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Isbn:   b.Isbn,
	}
}

// ============================================================
// Circulation
// ============================================================

// Loan represents loans table.
// BookID is a weak reference: no foreign key is created at migration.
type Loan struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Customer      string    `gorm:"size:255;not null;index" json:"customer"`
	CustomerEmail string    `gorm:"size:255;not null" json:"customer_email"`
	BookID        uint      `gorm:"index;not null" json:"book_id"`
	Book          Book      `gorm:"foreignKey:BookID" json:"book"`
	LoanDate      Date      `gorm:"type:date;not null;index" json:"loan_date"`
	Returned      *bool     `gorm:"index" json:"returned"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}

// ToDomain converts the row (and its preloaded book, if any) to a domain loan
func (l *Loan) ToDomain() *domain.Loan {
	loan := &domain.Loan{
		ID:            l.ID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		BookID:        l.BookID,
		LoanDate:      l.LoanDate.Time,
		Returned:      l.Returned,
	}
	if l.Book.ID != 0 {
		loan.Book = l.Book.ToDomain()
	}
	return loan
}

// NewLoan builds a row from a domain loan
func NewLoan(l *domain.Loan) *Loan {
	return &Loan{
		ID:            l.ID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		BookID:        l.BookID,
		LoanDate:      NewDate(l.LoanDate),
		Returned:      l.Returned,
	}
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&Loan{},
	)
}
