// Package budgetservice manages business logic layer of category budgets.
package budgetservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avasiliev/pocketledger/internal/budgeteval"
	"github.com/avasiliev/pocketledger/internal/domain"
)

// Repo provides data access layer interface needed by budget service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package budgetservice
type Repo interface {
	Create(ctx context.Context, owner, category, budgeted string) (domain.Budget, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Budget, error)
	Delete(ctx context.Context, id int64, owner string) error
}

// Ledger provides the transaction snapshots budget evaluation reads.
type Ledger interface {
	Snapshot(ctx context.Context, owner string) ([]domain.Transaction, error)
}

// Service facilitates budget service layer logic.
type Service struct {
	repo   Repo
	ledger Ledger
}

// New returns budget service struct to manage budget bussines logic.
func New(br Repo, ledger Ledger) *Service {
	return &Service{
		repo:   br,
		ledger: ledger,
	}
}

// Create validates and stores a budget for the owner's category.
func (s *Service) Create(ctx context.Context, owner, category, budgeted string) (domain.Budget, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(budgeted)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Budget{}, domain.ErrInvalidAmount
	}

	if amount.IsNegative() {
		return domain.Budget{}, domain.ErrInvalidBudget
	}

	b, err := s.repo.Create(ctx, owner, category, budgeted)
	if err != nil {
		return b, err
	}

	return b, nil
}

// List returns all the owner's budgets.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Budget, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// Delete removes the owner's budget with the given ID.
func (s *Service) Delete(ctx context.Context, id int64, owner string) error {
	return s.repo.Delete(ctx, id, owner)
}

// Status evaluates every budget of the owner over the given period.
func (s *Service) Status(ctx context.Context, owner string, period domain.DateRange) ([]domain.BudgetStatus, error) {
	budgets, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	records, err := s.ledger.Snapshot(ctx, owner)
	if err != nil {
		return nil, err
	}

	return budgeteval.Evaluate(records, budgets, period)
}

// Analyze summarizes the owner's spending by category over the given period.
func (s *Service) Analyze(ctx context.Context, owner string, period domain.DateRange) (domain.SpendingAnalysis, error) {
	records, err := s.ledger.Snapshot(ctx, owner)
	if err != nil {
		return domain.SpendingAnalysis{}, err
	}

	return budgeteval.AnalyzeSpending(records, period), nil
}
