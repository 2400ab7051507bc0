package services

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"library-api/internal/config"
	"library-api/internal/core/domain"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoanService struct {
	LoanService
	late []*domain.Loan
	err  error
	// block, when set, holds GetAllLateLoans until closed
	block   chan struct{}
	entered chan struct{}
}

func (s *stubLoanService) GetAllLateLoans(context.Context) ([]*domain.Loan, error) {
	if s.entered != nil {
		close(s.entered)
	}
	if s.block != nil {
		<-s.block
	}
	return s.late, s.err
}

type recordingEmailService struct {
	calls   int
	message string
	emails  []string
	err     error
}

func (r *recordingEmailService) SendMails(_ context.Context, message string, emails []string) error {
	r.calls++
	r.message = message
	r.emails = emails
	return r.err
}

func testLateLoansConfig() config.LateLoansConfig {
	return config.LateLoansConfig{
		Enabled:  true,
		Schedule: config.DefaultLateLoansSchedule,
		Message:  config.DefaultLateLoansMessage,
		Days:     DefaultLateLoanDays,
	}
}

func testCronLogger() cron.Logger {
	return cron.PrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
}

func TestLateLoanNotifier_RunOnce(t *testing.T) {
	loans := &stubLoanService{late: []*domain.Loan{
		{ID: 1, Customer: "Fulano", CustomerEmail: "fulano@email.com"},
		{ID: 2, Customer: "Ciclano", CustomerEmail: "ciclano@email.com"},
	}}
	mail := &recordingEmailService{}
	n := NewLateLoanNotifier(loans, mail, testLateLoansConfig(), testCronLogger())

	require.NoError(t, n.RunOnce(context.Background()))

	assert.Equal(t, 1, mail.calls)
	assert.Equal(t, config.DefaultLateLoansMessage, mail.message)
	assert.Equal(t, []string{"fulano@email.com", "ciclano@email.com"}, mail.emails)
	assert.False(t, n.Running())
}

func TestLateLoanNotifier_RunOnce_NoLateLoans(t *testing.T) {
	mail := &recordingEmailService{}
	n := NewLateLoanNotifier(&stubLoanService{}, mail, testLateLoansConfig(), testCronLogger())

	require.NoError(t, n.RunOnce(context.Background()))
	assert.Zero(t, mail.calls)
}

func TestLateLoanNotifier_RunOnce_Errors(t *testing.T) {
	t.Run("lookup fails", func(t *testing.T) {
		mail := &recordingEmailService{}
		n := NewLateLoanNotifier(&stubLoanService{err: errStorage}, mail, testLateLoansConfig(), testCronLogger())

		err := n.RunOnce(context.Background())
		assert.ErrorIs(t, err, errStorage)
		assert.Zero(t, mail.calls)
	})

	t.Run("send fails", func(t *testing.T) {
		sendErr := errors.New("smtp down")
		loans := &stubLoanService{late: []*domain.Loan{{ID: 1, CustomerEmail: "fulano@email.com"}}}
		mail := &recordingEmailService{err: sendErr}
		n := NewLateLoanNotifier(loans, mail, testLateLoansConfig(), testCronLogger())

		err := n.RunOnce(context.Background())
		assert.ErrorIs(t, err, sendErr)
		assert.Equal(t, 1, mail.calls)
		assert.False(t, n.Running())
	})
}

func TestLateLoanNotifier_RunOnce_Busy(t *testing.T) {
	loans := &stubLoanService{
		late:    []*domain.Loan{{ID: 1, CustomerEmail: "fulano@email.com"}},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	mail := &recordingEmailService{}
	n := NewLateLoanNotifier(loans, mail, testLateLoansConfig(), testCronLogger())

	done := make(chan error, 1)
	go func() { done <- n.RunOnce(context.Background()) }()

	<-loans.entered
	assert.True(t, n.Running())
	assert.ErrorIs(t, n.RunOnce(context.Background()), ErrNotifierBusy)

	close(loans.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, mail.calls)
}

func TestLateLoanNotifier_Start_InvalidSchedule(t *testing.T) {
	cfg := testLateLoansConfig()
	cfg.Schedule = "not a schedule"
	n := NewLateLoanNotifier(&stubLoanService{}, &recordingEmailService{}, cfg, testCronLogger())

	assert.Error(t, n.Start())
}

func TestLateLoanNotifier_StartStop(t *testing.T) {
	n := NewLateLoanNotifier(&stubLoanService{}, &recordingEmailService{}, testLateLoansConfig(), testCronLogger())

	require.NoError(t, n.Start())
	n.Stop()
}
