package handlers

import (
	"strconv"

	"library-api/internal/core/domain"
	"library-api/internal/core/services"
	"library-api/internal/pkg/pagination"
	"library-api/internal/pkg/response"
	"library-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService services.BookService
	loanService services.LoanService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService services.BookService, loanService services.LoanService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		loanService: loanService,
	}
}

// Create handles creating a book
// @Summary Create book
// @Description Add a book to the catalog. The ISBN must be unique.
// @Tags Books
// @Accept json
// @Produce json
// @Param body body BookDTO true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req BookDTO
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Save(c.Context(), &domain.Book{
		Title:  req.Title,
		Author: req.Author,
		Isbn:   req.Isbn,
	})
	if err != nil {
		return serviceError(c, err, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", toBookDTO(book))
}

// Get handles getting a book by ID
// @Summary Get book by ID
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	book, err := h.findBook(c)
	if err != nil || book == nil {
		return err
	}

	return response.Success(c, "Book retrieved successfully", toBookDTO(book))
}

// Update handles updating title and author of a book
// @Summary Update book
// @Description Update title and author. The ISBN cannot be changed.
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param body body UpdateBookRequest true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var req UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return serviceError(c, err, "Failed to update book")
	}

	book, err := h.findBook(c)
	if err != nil || book == nil {
		return err
	}

	book.Title = req.Title
	book.Author = req.Author

	updated, err := h.bookService.Update(c.Context(), book)
	if err != nil {
		return serviceError(c, err, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", toBookDTO(updated))
}

// Delete handles deleting a book
// @Summary Delete book
// @Tags Books
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	book, err := h.findBook(c)
	if err != nil || book == nil {
		return err
	}

	if err := h.bookService.Delete(c.Context(), book); err != nil {
		return serviceError(c, err, "Failed to delete book")
	}

	return response.NoContent(c)
}

// Find handles searching books
// @Summary Find books
// @Description Case-insensitive partial match on every given field
// @Tags Books
// @Produce json
// @Param title query string false "Title contains"
// @Param author query string false "Author contains"
// @Param isbn query string false "ISBN contains"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) Find(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := domain.Book{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Isbn:   c.Query("isbn"),
	}

	page, err := h.bookService.Find(c.Context(), filter, params.PageRequest())
	if err != nil {
		return serviceError(c, err, "Failed to find books")
	}

	return response.Success(c, "Books retrieved successfully", pagination.FromPage(page, params, toBookDTO))
}

// Loans handles listing the loans of a book
// @Summary Loans by book
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/loans [get]
func (h *BookHandler) Loans(c *fiber.Ctx) error {
	book, err := h.findBook(c)
	if err != nil || book == nil {
		return err
	}

	params := pagination.GetParams(c)
	page, err := h.loanService.GetByBook(c.Context(), book, params.PageRequest())
	if err != nil {
		return serviceError(c, err, "Failed to find loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.FromPage(page, params, toLoanDTO))
}

// findBook loads the book named by the :id param.
// A nil book with a nil error means the response has already been written.
func (h *BookHandler) findBook(c *fiber.Ctx) (*domain.Book, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetByID(c.Context(), uint(id))
	if err != nil {
		return nil, serviceError(c, err, "Failed to get book")
	}
	if book == nil {
		return nil, response.NotFound(c, "Book not found")
	}
	return book, nil
}
