package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"library-api/internal/adapters/http/handlers"
	"library-api/internal/adapters/http/middleware"
	"library-api/internal/adapters/http/routes"
	"library-api/internal/config"
	"library-api/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ret returns the i-th mocked return value, tolerating untyped nil
func ret[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

type mockBookService struct{ mock.Mock }

func (m *mockBookService) Save(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	args := m.Called(ctx, book)
	return ret[*domain.Book](args, 0), args.Error(1)
}

func (m *mockBookService) GetByID(ctx context.Context, id uint) (*domain.Book, error) {
	args := m.Called(ctx, id)
	return ret[*domain.Book](args, 0), args.Error(1)
}

func (m *mockBookService) GetByIsbn(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	return ret[*domain.Book](args, 0), args.Error(1)
}

func (m *mockBookService) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	args := m.Called(ctx, book)
	return ret[*domain.Book](args, 0), args.Error(1)
}

func (m *mockBookService) Delete(ctx context.Context, book *domain.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookService) Find(ctx context.Context, filter domain.Book, page domain.PageRequest) (*domain.Page[*domain.Book], error) {
	args := m.Called(ctx, filter, page)
	return ret[*domain.Page[*domain.Book]](args, 0), args.Error(1)
}

type mockLoanService struct{ mock.Mock }

func (m *mockLoanService) Save(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	args := m.Called(ctx, loan)
	return ret[*domain.Loan](args, 0), args.Error(1)
}

func (m *mockLoanService) GetByID(ctx context.Context, id uint) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	return ret[*domain.Loan](args, 0), args.Error(1)
}

func (m *mockLoanService) Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	args := m.Called(ctx, loan)
	return ret[*domain.Loan](args, 0), args.Error(1)
}

func (m *mockLoanService) Find(ctx context.Context, filter domain.LoanFilter, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	args := m.Called(ctx, filter, page)
	return ret[*domain.Page[*domain.Loan]](args, 0), args.Error(1)
}

func (m *mockLoanService) GetByBook(ctx context.Context, book *domain.Book, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	args := m.Called(ctx, book, page)
	return ret[*domain.Page[*domain.Loan]](args, 0), args.Error(1)
}

func (m *mockLoanService) GetAllLateLoans(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	return ret[[]*domain.Loan](args, 0), args.Error(1)
}

type mockRunner struct{ mock.Mock }

func (m *mockRunner) RunOnce(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type testServer struct {
	app    *fiber.App
	books  *mockBookService
	loans  *mockLoanService
	runner *mockRunner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		books:  &mockBookService{},
		loans:  &mockLoanService{},
		runner: &mockRunner{},
	}
	t.Cleanup(func() {
		s.books.AssertExpectations(t)
		s.loans.AssertExpectations(t)
		s.runner.AssertExpectations(t)
	})

	s.app = fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	routes.Setup(s.app,
		handlers.NewHealthHandler(nil, &config.Config{AppMode: "dev"}),
		handlers.NewBookHandler(s.books, s.loans),
		handlers.NewLoanHandler(s.loans, s.books, s.runner),
	)
	return s
}

// envelope mirrors response.Response with a typed payload
type envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    T        `json:"data"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors"`
}

type paged[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}
