package services

import (
	"context"
	"time"

	"library-api/internal/adapters/persistence/repositories"
	"library-api/internal/core/domain"
)

// DefaultLateLoanDays is how many days a book may stay out before the loan counts as late
const DefaultLateLoanDays = 4

// loanService handles circulation business logic
type loanService struct {
	loanRepo     repositories.LoanRepository
	lateLoanDays int
	now          func() time.Time
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo repositories.LoanRepository, lateLoanDays int) LoanService {
	if lateLoanDays <= 0 {
		lateLoanDays = DefaultLateLoanDays
	}
	return &loanService{
		loanRepo:     loanRepo,
		lateLoanDays: lateLoanDays,
		now:          time.Now,
	}
}

// Save stores a new loan unless the book already has an outstanding one.
// The check and the insert run under a lock on the book row, so two
// concurrent loans of one book cannot both pass the check.
func (s *loanService) Save(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if loan.LoanDate.IsZero() {
		loan.LoanDate = domain.DateOf(s.now())
	}

	var saved *domain.Loan
	err := s.loanRepo.WithBookLock(ctx, loan.BookID, func(repo repositories.LoanRepository) error {
		exists, err := repo.ExistsByBookNotReturned(ctx, loan.BookID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrBookAlreadyLoaned
		}

		saved, err = repo.Create(ctx, loan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByID gets a loan by ID
func (s *loanService) GetByID(ctx context.Context, id uint) (*domain.Loan, error) {
	return absentIfNotFound(s.loanRepo.GetByID(ctx, id))
}

// Update persists changes to a stored loan, typically the returned flag
func (s *loanService) Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	if loan == nil || loan.ID == 0 {
		return nil, domain.ErrInvalidLoanID
	}
	return s.loanRepo.Update(ctx, loan)
}

// Find lists loans matching the filter's ISBN or customer
func (s *loanService) Find(ctx context.Context, filter domain.LoanFilter, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	return s.loanRepo.FindByIsbnOrCustomer(ctx, filter, page)
}

// GetByBook lists every loan of a book
func (s *loanService) GetByBook(ctx context.Context, book *domain.Book, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	if !book.HasID() {
		return nil, domain.ErrInvalidBookID
	}
	return s.loanRepo.FindByBook(ctx, book.ID, page)
}

// GetAllLateLoans lists outstanding loans made lateLoanDays or more days ago
func (s *loanService) GetAllLateLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.loanRepo.FindOverdueUnreturned(ctx, s.cutoff())
}

func (s *loanService) cutoff() time.Time {
	return domain.DateOf(s.now()).AddDate(0, 0, -s.lateLoanDays)
}
