package handlers

import (
	"context"
	"errors"
	"strconv"

	"library-api/internal/core/domain"
	"library-api/internal/core/services"
	"library-api/internal/pkg/pagination"
	"library-api/internal/pkg/response"
	"library-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// LateLoanRunner triggers one late loan reminder run
type LateLoanRunner interface {
	RunOnce(ctx context.Context) error
}

// LoanHandler handles circulation endpoints
type LoanHandler struct {
	loanService services.LoanService
	bookService services.BookService
	notifier    LateLoanRunner
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService services.LoanService, bookService services.BookService, notifier LateLoanRunner) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		bookService: bookService,
		notifier:    notifier,
	}
}

// Create handles lending a book
// @Summary Create loan
// @Description Lend the book with the given ISBN. Fails if the book is already out.
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body CreateLoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return serviceError(c, err, "Failed to create loan")
	}

	book, err := h.bookService.GetByIsbn(c.Context(), req.Isbn)
	if err != nil {
		return serviceError(c, err, "Failed to create loan")
	}
	if book == nil {
		return response.BadRequest(c, domain.ErrBookNotFoundIsbn.Error())
	}

	loan, err := h.loanService.Save(c.Context(), &domain.Loan{
		Customer:      req.Customer,
		CustomerEmail: req.Email,
		BookID:        book.ID,
		Book:          book,
	})
	if err != nil {
		return serviceError(c, err, "Failed to create loan")
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"id": loan.ID,
	})
}

// Get handles getting a loan by ID
// @Summary Get loan by ID
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	loan, err := h.findLoan(c)
	if err != nil || loan == nil {
		return err
	}

	return response.Success(c, "Loan retrieved successfully", toLoanDTO(loan))
}

// ReturnBook handles updating the return status of a loan
// @Summary Update loan return status
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param body body ReturnLoanRequest true "Return status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [patch]
func (h *LoanHandler) ReturnBook(c *fiber.Ctx) error {
	var req ReturnLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return serviceError(c, err, "Failed to update loan")
	}

	loan, err := h.findLoan(c)
	if err != nil || loan == nil {
		return err
	}

	loan.Returned = req.Returned
	updated, err := h.loanService.Update(c.Context(), loan)
	if err != nil {
		return serviceError(c, err, "Failed to update loan")
	}

	return response.Success(c, "Loan updated successfully", toLoanDTO(updated))
}

// Find handles searching loans
// @Summary Find loans
// @Description Loans whose book ISBN or customer matches (either one)
// @Tags Loans
// @Produce json
// @Param isbn query string false "Book ISBN"
// @Param customer query string false "Customer name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) Find(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := domain.LoanFilter{
		Isbn:     c.Query("isbn"),
		Customer: c.Query("customer"),
	}

	page, err := h.loanService.Find(c.Context(), filter, params.PageRequest())
	if err != nil {
		return serviceError(c, err, "Failed to find loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.FromPage(page, params, toLoanDTO))
}

// LateLoans handles listing late loans
// @Summary Late loans
// @Description Outstanding loans older than the late threshold
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Router /loans/late [get]
func (h *LoanHandler) LateLoans(c *fiber.Ctx) error {
	loans, err := h.loanService.GetAllLateLoans(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to get late loans")
	}

	dtos := make([]*LoanDTO, len(loans))
	for i, loan := range loans {
		dtos[i] = toLoanDTO(loan)
	}

	return response.Success(c, "Late loans retrieved successfully", dtos)
}

// NotifyLateLoans handles triggering the late loan reminder
// @Summary Send late loan reminders
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/late/notify [post]
func (h *LoanHandler) NotifyLateLoans(c *fiber.Ctx) error {
	if err := h.notifier.RunOnce(c.Context()); err != nil {
		if errors.Is(err, services.ErrNotifierBusy) {
			return response.Conflict(c, "Late loan notification already running")
		}
		return serviceError(c, err, "Failed to send late loan reminders")
	}

	return response.Success(c, "Late loan reminders sent", nil)
}

// findLoan loads the loan named by the :id param.
// A nil loan with a nil error means the response has already been written.
func (h *LoanHandler) findLoan(c *fiber.Ctx) (*domain.Loan, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		return nil, serviceError(c, err, "Failed to get loan")
	}
	if loan == nil {
		return nil, response.NotFound(c, "Loan not found")
	}
	return loan, nil
}
