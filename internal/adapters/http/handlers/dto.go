package handlers

import (
	"errors"
	"log"

	"library-api/internal/core/domain"
	"library-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DateLayout is the wire format of loan dates
const DateLayout = "2006-01-02"

// BookDTO represents a book in requests and responses
type BookDTO struct {
	ID     uint   `json:"id,omitempty"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Isbn   string `json:"isbn"`
}

func toBookDTO(b *domain.Book) *BookDTO {
	return &BookDTO{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Isbn:   b.Isbn,
	}
}

// UpdateBookRequest represents update book request body
type UpdateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// CreateLoanRequest represents create loan request body
type CreateLoanRequest struct {
	Customer string `json:"customer" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Isbn     string `json:"isbn" validate:"required"`
}

// ReturnLoanRequest represents the loan return status body.
// Returned must be present; false is accepted and reopens the loan.
type ReturnLoanRequest struct {
	Returned *bool `json:"returned" validate:"required"`
}

// LoanDTO represents a loan in responses
type LoanDTO struct {
	ID       uint     `json:"id"`
	Customer string   `json:"customer"`
	Email    string   `json:"email"`
	Isbn     string   `json:"isbn,omitempty"`
	LoanDate string   `json:"loan_date"`
	Returned *bool    `json:"returned"`
	Book     *BookDTO `json:"book,omitempty"`
}

func toLoanDTO(l *domain.Loan) *LoanDTO {
	dto := &LoanDTO{
		ID:       l.ID,
		Customer: l.Customer,
		Email:    l.CustomerEmail,
		LoanDate: l.LoanDate.Format(DateLayout),
		Returned: l.Returned,
	}
	if l.Book != nil {
		dto.Book = toBookDTO(l.Book)
		dto.Isbn = l.Book.Isbn
	}
	return dto
}

// serviceError renders the domain error kinds; anything else is logged and becomes a 500
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return response.BadRequest(c, validationErr.Errors...)
	case errors.Is(err, domain.ErrIsbnAlreadyExists):
		return response.Conflict(c, domain.ErrIsbnAlreadyExists.Error())
	case errors.Is(err, domain.ErrBookAlreadyLoaned):
		return response.BadRequest(c, domain.ErrBookAlreadyLoaned.Error())
	case errors.Is(err, domain.ErrInvalidBookID):
		return response.BadRequest(c, domain.ErrInvalidBookID.Error())
	case errors.Is(err, domain.ErrInvalidLoanID):
		return response.BadRequest(c, domain.ErrInvalidLoanID.Error())
	default:
		log.Printf("❌ %s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}
