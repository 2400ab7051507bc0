package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"library-api/internal/adapters/persistence/models"
	"library-api/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notReturned matches loans whose returned flag is unset or false
const notReturned = "(loans.returned IS NULL OR loans.returned = ?)"

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create inserts a new loan
func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	row := models.NewLoan(loan)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	created := row.ToDomain()
	created.Book = loan.Book
	return created, nil
}

// GetByID gets a loan by ID with its book
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*domain.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("id = ?", id).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return loan.ToDomain(), nil
}

// Update writes the loan's own columns. created_at is left alone and a
// missing id updates nothing.
func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	row := models.NewLoan(loan)
	err := r.db.WithContext(ctx).
		Model(&models.Loan{ID: loan.ID}).
		Updates(map[string]interface{}{
			"customer":       row.Customer,
			"customer_email": row.CustomerEmail,
			"book_id":        row.BookID,
			"loan_date":      row.LoanDate,
			"returned":       row.Returned,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update loan %d: %w", loan.ID, err)
	}
	return r.GetByID(ctx, loan.ID)
}

// ExistsByBookNotReturned checks if the book has an outstanding loan
func (r *loanRepository) ExistsByBookNotReturned(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("loans.book_id = ?", bookID).
		Where(notReturned, false).
		Count(&count).Error
	return count > 0, err
}

// FindByIsbnOrCustomer lists loans whose book ISBN or customer matches.
// An empty term adds no condition; no terms at all lists every loan.
func (r *loanRepository) FindByIsbnOrCustomer(ctx context.Context, filter domain.LoanFilter, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	var conds []string
	var args []interface{}
	if filter.Isbn != "" {
		conds = append(conds, "books.isbn = ?")
		args = append(args, filter.Isbn)
	}
	if filter.Customer != "" {
		conds = append(conds, "loans.customer = ?")
		args = append(args, filter.Customer)
	}

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Joins("LEFT JOIN books ON books.id = loans.book_id")
		if len(conds) > 0 {
			db = db.Where(strings.Join(conds, " OR "), args...)
		}
		return db
	}
	return r.page(ctx, scope, page)
}

// FindByBook lists every loan of a book
func (r *loanRepository) FindByBook(ctx context.Context, bookID uint, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("loans.book_id = ?", bookID)
	}
	return r.page(ctx, scope, page)
}

// FindOverdueUnreturned lists outstanding loans made on or before cutoff
func (r *loanRepository) FindOverdueUnreturned(ctx context.Context, cutoff time.Time) ([]*domain.Loan, error) {
	var rows []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("loans.loan_date <= ?", models.NewDate(cutoff)).
		Where(notReturned, false).
		Order("loans.loan_date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find overdue loans: %w", err)
	}
	return toDomainLoans(rows), nil
}

// WithBookLock locks the book row with SELECT ... FOR UPDATE for the duration of fn
func (r *loanRepository) WithBookLock(ctx context.Context, bookID uint, fn func(repo LoanRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", bookID).
			First(&book).Error
		if err != nil {
			return fmt.Errorf("lock book %d: %w", bookID, err)
		}
		return fn(&loanRepository{db: tx})
	})
}

func (r *loanRepository) page(ctx context.Context, scope func(*gorm.DB) *gorm.DB, page domain.PageRequest) (*domain.Page[*domain.Loan], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}

	var rows []*models.Loan
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Scopes(scope).
		Preload("Book").
		Order("loans.id").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find loans: %w", err)
	}
	return &domain.Page[*domain.Loan]{Items: toDomainLoans(rows), Total: total}, nil
}

func toDomainLoans(rows []*models.Loan) []*domain.Loan {
	loans := make([]*domain.Loan, len(rows))
	for i, row := range rows {
		loans[i] = row.ToDomain()
	}
	return loans
}
