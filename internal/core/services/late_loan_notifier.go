package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"library-api/internal/config"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// ErrNotifierBusy is returned when a late loan run is already in progress
var ErrNotifierBusy = errors.New("late loan notification already running")

// ============================================================
// Late loans: daily reminder mail to customers with overdue books
// ============================================================

// LateLoanNotifier mails every customer holding a late loan
type LateLoanNotifier struct {
	loanService  LoanService
	emailService EmailService
	cfg          config.LateLoansConfig
	cron         *cron.Cron
	running      atomic.Bool
}

// NewLateLoanNotifier creates a new notifier. logger receives the scheduler's own output.
func NewLateLoanNotifier(loanService LoanService, emailService EmailService, cfg config.LateLoansConfig, logger cron.Logger) *LateLoanNotifier {
	return &LateLoanNotifier{
		loanService:  loanService,
		emailService: emailService,
		cfg:          cfg,
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Start schedules RunOnce on the configured cron expression
func (n *LateLoanNotifier) Start() error {
	if _, err := n.cron.AddFunc(n.cfg.Schedule, n.runScheduled); err != nil {
		return fmt.Errorf("schedule late loan notifier: %w", err)
	}
	n.cron.Start()
	log.Printf("🚀 LateLoanNotifier started [schedule: %s]", n.cfg.Schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (n *LateLoanNotifier) Stop() {
	<-n.cron.Stop().Done()
	log.Println("🛑 LateLoanNotifier stopped")
}

// Running reports whether a run is in progress
func (n *LateLoanNotifier) Running() bool {
	return n.running.Load()
}

// RunOnce fetches the late loans and mails their customers in one batch.
// A failed send is returned as is and never retried.
func (n *LateLoanNotifier) RunOnce(ctx context.Context) error {
	if !n.running.CompareAndSwap(false, true) {
		return ErrNotifierBusy
	}
	defer n.running.Store(false)

	runID := uuid.NewString()

	loans, err := n.loanService.GetAllLateLoans(ctx)
	if err != nil {
		return fmt.Errorf("get late loans: %w", err)
	}

	emails := make([]string, 0, len(loans))
	for _, loan := range loans {
		emails = append(emails, loan.CustomerEmail)
	}

	if len(emails) == 0 {
		log.Printf("📭 [%s] No late loans found", runID)
		return nil
	}

	if err := n.emailService.SendMails(ctx, n.cfg.Message, emails); err != nil {
		return fmt.Errorf("send late loan mails: %w", err)
	}

	log.Printf("📧 [%s] Sent late loan reminder to %d customers", runID, len(emails))
	return nil
}

func (n *LateLoanNotifier) runScheduled() {
	err := n.RunOnce(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, ErrNotifierBusy):
		log.Println("⚠️ Late loan notification skipped: previous run still in progress")
	default:
		log.Printf("❌ Late loan notification failed: %v", err)
	}
}
